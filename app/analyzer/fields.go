package analyzer

// Field identifies one of the eight roles a part-list column can fill.
// The set is fixed; nothing extends it at runtime.
type Field string

const (
	FieldName           Field = "name"
	FieldLength         Field = "length"
	FieldWidth          Field = "width"
	FieldCodeSAP        Field = "code_sap"
	FieldReferenceKit   Field = "reference_kit"
	FieldReferencePiece Field = "reference_piece"
	FieldPaquet         Field = "paquet"
	FieldRepere         Field = "repere"
)

// AllFields lists every field in canonical order. The order matters: it is
// the claim order used by the heuristic matcher and the positional order of
// the degenerate single-line layout (see extract.go).
var AllFields = []Field{
	FieldName,
	FieldLength,
	FieldWidth,
	FieldCodeSAP,
	FieldReferenceKit,
	FieldReferencePiece,
	FieldPaquet,
	FieldRepere,
}

// MandatoryFields are the fields extraction cannot run without.
var MandatoryFields = []Field{FieldName, FieldLength, FieldWidth}

// OptionalFields are copied into Part.Extras when resolved and non-empty.
var OptionalFields = []Field{
	FieldCodeSAP,
	FieldReferenceKit,
	FieldReferencePiece,
	FieldPaquet,
	FieldRepere,
}

// IsMandatory reports whether f is one of name, length, width.
func (f Field) IsMandatory() bool {
	return f == FieldName || f == FieldLength || f == FieldWidth
}

// Label returns the operator-facing label for the field.
func (f Field) Label() string {
	switch f {
	case FieldName:
		return "Nom de la pièce"
	case FieldLength:
		return "Longueur"
	case FieldWidth:
		return "Largeur"
	case FieldCodeSAP:
		return "Code SAP"
	case FieldReferenceKit:
		return "Référence kit"
	case FieldReferencePiece:
		return "Référence pièce"
	case FieldPaquet:
		return "Paquet"
	case FieldRepere:
		return "Repère"
	default:
		return string(f)
	}
}

// Mapping associates fields with the header they resolved to. A field absent
// from the map is unresolved. Invariant: once grounded, every value is a
// member of the header set the mapping was derived from.
type Mapping map[Field]string

// Clone returns a shallow copy of the mapping.
func (m Mapping) Clone() Mapping {
	out := make(Mapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MissingMandatory returns the mandatory fields not present in the mapping,
// in canonical order.
func (m Mapping) MissingMandatory() []Field {
	var missing []Field
	for _, f := range MandatoryFields {
		if m[f] == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// FieldGuess is a best-effort per-field column-name suggestion from the
// advisory service. Empty string means the advisor reported the column as
// absent (or gave no answer for it).
type FieldGuess struct {
	Name           string
	Length         string
	Width          string
	CodeSAP        string
	ReferenceKit   string
	ReferencePiece string
	Paquet         string
	Repere         string
}

// Value returns the guessed header for f, "" if none.
func (g *FieldGuess) Value(f Field) string {
	switch f {
	case FieldName:
		return g.Name
	case FieldLength:
		return g.Length
	case FieldWidth:
		return g.Width
	case FieldCodeSAP:
		return g.CodeSAP
	case FieldReferenceKit:
		return g.ReferenceKit
	case FieldReferencePiece:
		return g.ReferencePiece
	case FieldPaquet:
		return g.Paquet
	case FieldRepere:
		return g.Repere
	default:
		return ""
	}
}

// MandatoryComplete reports whether all three mandatory fields carry a
// non-empty guess. A guess that fails this test is discarded wholesale: a
// partial answer on the columns everything else depends on is worse than no
// answer at all.
func (g *FieldGuess) MandatoryComplete() bool {
	return g != nil && g.Name != "" && g.Length != "" && g.Width != ""
}
