package review

import "encoding/json"

// LegalLibrary is the static knowledge base of legal references the
// review model checks citations against. It is serialized verbatim
// into the system instruction; nothing in the pipeline consults it
// programmatically.
var LegalLibrary = map[string]map[string]string{
	"RJAIA": {
		"Regime Geral": "DL 151-B/2013 alterado pelo DL 11/2023 (Simplex)",
		"Taxas":        "Portaria n.º 332-B/2015",
		"Clima":        "Lei de Bases do Clima",
		"Prazos":       "Atenção aos deferimentos tácitos do Simplex",
	},
	"Licenciamento": {
		"Regime Ambiental": "DL 75/2015 (Licenciamento Único de Ambiente)",
		"Emissões":         "DL 127/2013 (Regime de Emissões Industriais)",
	},
	"Recursos Hídricos": {
		"Utilização": "Lei 58/2005 (Lei da Água) e DL 226-A/2007",
	},
}

// LibraryContext renders the knowledge base as indented JSON for the
// system instruction.
func LibraryContext() string {
	b, err := json.MarshalIndent(LegalLibrary, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
