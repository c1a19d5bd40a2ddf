package catalog

import (
	"fmt"
	"slices"
)

// Sector is a key of the closed sector taxonomy.
type Sector string

const (
	SectorHumanResources Sector = "recursos_humanos"
	SectorHealth         Sector = "saude"
	SectorFinance        Sector = "financeiro"
	SectorMarketing      Sector = "marketing"
	SectorTechnology     Sector = "tecnologia"
	SectorEducation      Sector = "educacao"
)

type sectorDefinition struct {
	key       Sector
	label     string
	questions []Question
}

// taxonomy lists every known sector in registration order. Question ids are
// fixed per sector so compositions stay aligned across profile changes.
var taxonomy = []sectorDefinition{
	{
		key:   SectorHumanResources,
		label: "Recursos Humanos",
		questions: []Question{
			{ID: 101, Prompt: "Os dados de candidatos e colaboradores são descartados após o prazo de retenção definido?"},
			{ID: 102, Prompt: "O acesso a prontuários e dados de saúde ocupacional é restrito a pessoas autorizadas?"},
			{ID: 103, Prompt: "Os colaboradores são informados sobre o tratamento de seus dados (monitoramento, benefícios)?"},
		},
	},
	{
		key:   SectorHealth,
		label: "Saúde",
		questions: []Question{
			{ID: 201, Prompt: "Os prontuários de pacientes possuem controle de acesso e trilha de auditoria?"},
			{ID: 202, Prompt: "O compartilhamento de dados de saúde com operadoras e laboratórios é amparado em base legal?"},
			{ID: 203, Prompt: "Os dados de saúde são armazenados com criptografia?", RequiresEvidence: true, EvidenceWhen: ValueYes},
		},
	},
	{
		key:   SectorFinance,
		label: "Financeiro",
		questions: []Question{
			{ID: 301, Prompt: "Os dados bancários e de cartão são armazenados de forma segregada e protegida?"},
			{ID: 302, Prompt: "As consultas a bureaus de crédito são registradas e justificadas?"},
			{ID: 303, Prompt: "Os prazos de guarda de documentos fiscais e financeiros são respeitados e documentados?"},
		},
	},
	{
		key:   SectorMarketing,
		label: "Marketing",
		questions: []Question{
			{ID: 401, Prompt: "Comunicações de marketing são enviadas apenas com consentimento ou legítimo interesse documentado?"},
			{ID: 402, Prompt: "Os titulares conseguem cancelar o recebimento de comunicações de forma simples?"},
			{ID: 403, Prompt: "O uso de cookies e rastreadores é informado e configurável pelo visitante?"},
		},
	},
	{
		key:   SectorTechnology,
		label: "Tecnologia da Informação",
		questions: []Question{
			{ID: 501, Prompt: "Os ambientes de desenvolvimento utilizam dados anonimizados ou fictícios?"},
			{ID: 502, Prompt: "Os acessos privilegiados são revisados periodicamente?"},
			{ID: 503, Prompt: "Os registros (logs) de acesso a dados pessoais são mantidos e protegidos?", RequiresEvidence: true, EvidenceWhen: ValueYes},
		},
	},
	{
		key:   SectorEducation,
		label: "Educação",
		questions: []Question{
			{ID: 601, Prompt: "O tratamento de dados de crianças e adolescentes conta com consentimento dos responsáveis?"},
			{ID: 602, Prompt: "Os dados acadêmicos são compartilhados apenas com finalidade educacional definida?"},
		},
	},
}

// Sectors returns the taxonomy keys in registration order.
func Sectors() []Sector {
	out := make([]Sector, len(taxonomy))
	for i, d := range taxonomy {
		out[i] = d.key
	}
	return out
}

// IsKnownSector reports whether s belongs to the taxonomy.
func IsKnownSector(s Sector) bool {
	_, ok := lookupSector(s)
	return ok
}

// SectorLabel returns the display name of a known sector, or the key itself.
func SectorLabel(s Sector) string {
	if d, ok := lookupSector(s); ok {
		return d.label
	}
	return string(s)
}

// ValidateSectors rejects any sector outside the taxonomy.
func ValidateSectors(sectors []Sector) error {
	for _, s := range sectors {
		if !IsKnownSector(s) {
			return fmt.Errorf("unknown sector %q", s)
		}
	}
	return nil
}

func lookupSector(s Sector) (sectorDefinition, bool) {
	i := slices.IndexFunc(taxonomy, func(d sectorDefinition) bool { return d.key == s })
	if i < 0 {
		return sectorDefinition{}, false
	}
	return taxonomy[i], true
}

func sectorQuestions(d sectorDefinition) []Question {
	out := make([]Question, len(d.questions))
	for i, q := range d.questions {
		q.Kind = KindSingle
		q.Options = complianceOptions
		q.Sector = string(d.key)
		q.SectorLabel = d.label
		if q.Description == "" {
			q.Description = "Pergunta específica do setor " + d.label + "."
		}
		out[i] = q
	}
	return out
}
