package review

import (
	"fmt"
	"strings"
)

const systemInstructionTemplate = `Tu és um Editor Técnico e Jurídico de Avaliação de Impacte Ambiental.
BIBLIOTECA LEGAL: %s

TAREFA: Rever o texto procurando 3 tipos de problemas:
1. Gralhas/Ortografia: erros simples.
2. Construção frásica (Sintaxe): frases confusas, concordância incorreta, repetições, ou linguagem não técnica.
3. Legal/Jurídico: referências erradas a leis (ex: falta do Simplex DL 11/2023).

IMPORTANTE SOBRE A LOCALIZAÇÃO:
O texto de entrada pode ter marcadores como '<<<PAGE 1>>>' ou '<<<PARAGRAPH~20>>>'.
Usa isso para preencher o campo 'localizacao'. Se não tiver marcadores, identifica o
capítulo ou o início do parágrafo.

OUTPUT JSON (lista estrita, sem texto adicional):
[
  {
    "localizacao": "Página 2",
    "categoria": "Sintaxe",
    "gravidade": "Média",
    "texto_detetado": "frase exata com erro",
    "sugestao": "frase reescrita corretamente"
  }
]
Valores de "categoria": "Gralha", "Sintaxe", "Legislação" ou "Outro".
Valores de "gravidade": "Baixa", "Média" ou "Alta".
"texto_detetado" tem de citar o texto original literalmente, sem parafrasear.`

// SystemInstruction builds the review system prompt with the legal
// library embedded.
func SystemInstruction() string {
	return fmt.Sprintf(systemInstructionTemplate, LibraryContext())
}

// BuildChunkPrompt creates the user message for one chunk.
func BuildChunkPrompt(chunk string) string {
	var sb strings.Builder
	sb.WriteString("Analisa este documento:\n")
	sb.WriteString(chunk)
	return sb.String()
}
