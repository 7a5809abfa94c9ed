package advisor

import "fmt"

// promptTemplate instructs the model to return exactly one JSON object with
// the eight *_column keys, using the column names exactly as they appear in
// the file, null for absent columns. The wording stays in French to match
// the part lists it describes.
const promptTemplate = `Analyse ce fichier de débit et identifie les colonnes pour créer des fichiers DXF.

Contenu du fichier:
%s

INSTRUCTIONS:
- Les colonnes peuvent être dans n'importe quel ordre
- Le séparateur est probablement le point-virgule (;)
- Retourner les noms EXACTS des colonnes tels qu'ils apparaissent dans le fichier (espaces et casse compris)
- Retourner SEULEMENT le JSON demandé, sans explication

COLONNES À IDENTIFIER:
1. Nom de la pièce: "nom des pièces", "blaze des pièces", "pièce", "désignation" ou similaire
2. Longueur: "LONGUEUR", "longueur", "long" ou similaire
3. Largeur: "LARGEUR", "largeur", "larg" ou similaire
4. Code SAP: "Code SAP", "code sap" ou similaire
5. Référence kit: "référence kit", "ref kit" ou similaire
6. Référence pièce: "référence pièce", "ref pièce" ou similaire
7. Paquet: "paquet", "lot" ou similaire
8. Repère: "repère", "repere", "position" ou similaire

Retourne OBLIGATOIREMENT ce JSON exact:
{
    "name_column": "nom_exact_colonne_piece",
    "length_column": "nom_exact_colonne_longueur",
    "width_column": "nom_exact_colonne_largeur",
    "code_sap_column": "nom_exact_colonne_code_sap",
    "reference_kit_column": "nom_exact_colonne_ref_kit",
    "reference_piece_column": "nom_exact_colonne_ref_piece",
    "paquet_column": "nom_exact_colonne_paquet",
    "repere_column": "nom_exact_colonne_repere"
}

Si une colonne n'existe pas, mettre null.`

func buildPrompt(rawText string) string {
	return fmt.Sprintf(promptTemplate, rawText)
}
