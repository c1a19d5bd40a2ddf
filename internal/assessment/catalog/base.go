package catalog

// Base question ids. Remediation rules bind to these, never to positions.
const (
	QuestionPrivacyPolicy    = 1
	QuestionConsent          = 2
	QuestionDataMapping      = 3
	QuestionSubjectRights    = 4
	QuestionDPO              = 5
	QuestionSecurityControls = 6
	QuestionIncidentResponse = 7
	QuestionTraining         = 8
	QuestionVendors          = 9
	QuestionSensitiveData    = 10
)

var complianceOptions = []string{ValueYes, ValuePartial, ValueNo, "não sei"}

var baseQuestions = []Question{
	{
		ID:               QuestionPrivacyPolicy,
		Prompt:           "A organização possui uma política de privacidade publicada e atualizada?",
		Kind:             KindSingle,
		Options:          complianceOptions,
		RequiresEvidence: true,
		EvidenceWhen:     ValueYes,
		Description:      "Documento público que informa aos titulares como seus dados pessoais são tratados.",
	},
	{
		ID:          QuestionConsent,
		Prompt:      "O consentimento dos titulares é coletado e registrado quando essa é a base legal do tratamento?",
		Kind:        KindSingle,
		Options:     complianceOptions,
		Description: "Registros de consentimento livre, informado e inequívoco, com possibilidade de revogação.",
	},
	{
		ID:               QuestionDataMapping,
		Prompt:           "Existe um mapeamento (inventário) dos dados pessoais tratados pela organização?",
		Kind:             KindSingle,
		Options:          complianceOptions,
		RequiresEvidence: true,
		EvidenceWhen:     ValueYes,
		Description:      "Registro das operações de tratamento: finalidade, base legal, categorias de dados e compartilhamentos.",
	},
	{
		ID:          QuestionSubjectRights,
		Prompt:      "Há um procedimento para atender às solicitações dos titulares (acesso, correção, exclusão)?",
		Kind:        KindSingle,
		Options:     complianceOptions,
		Description: "Canal e prazos definidos para responder aos direitos previstos em lei.",
	},
	{
		ID:               QuestionDPO,
		Prompt:           "A organização designou um Encarregado pelo tratamento de dados pessoais (DPO)?",
		Kind:             KindSingle,
		Options:          complianceOptions,
		RequiresEvidence: true,
		EvidenceWhen:     ValueYes,
		Description:      "Pessoa responsável pela comunicação entre controlador, titulares e autoridade nacional.",
	},
	{
		ID:          QuestionSecurityControls,
		Prompt:      "São adotados controles técnicos de segurança (criptografia, controle de acesso, backups)?",
		Kind:        KindSingle,
		Options:     complianceOptions,
		Description: "Medidas técnicas e administrativas aptas a proteger os dados pessoais.",
	},
	{
		ID:          QuestionIncidentResponse,
		Prompt:      "Existe um plano de resposta a incidentes de segurança envolvendo dados pessoais?",
		Kind:        KindSingle,
		Options:     complianceOptions,
		Description: "Procedimento para detectar, conter e comunicar incidentes à autoridade e aos titulares.",
	},
	{
		ID:          QuestionTraining,
		Prompt:      "Os colaboradores recebem treinamentos periódicos sobre proteção de dados?",
		Kind:        KindSingle,
		Options:     complianceOptions,
		Description: "Capacitação e conscientização contínuas das equipes que tratam dados pessoais.",
	},
	{
		ID:          QuestionVendors,
		Prompt:      "Os fornecedores e operadores que tratam dados pessoais são avaliados e possuem cláusulas contratuais de proteção de dados?",
		Kind:        KindSingle,
		Options:     complianceOptions,
		Description: "Gestão de terceiros: due diligence, contratos e acompanhamento.",
	},
	{
		ID:     QuestionSensitiveData,
		Prompt: "Quais categorias de dados pessoais sensíveis a organização trata?",
		Kind:   KindMulti,
		Options: []string{
			"saúde", "biometria", "origem racial ou étnica", "convicção religiosa",
			"opinião política", "vida sexual", "nenhuma",
		},
		Description: "Dados sensíveis exigem bases legais específicas e controles reforçados.",
	},
}

// Base returns a copy of the fixed base catalog.
func Base() Catalog {
	out := make(Catalog, len(baseQuestions))
	for i, q := range baseQuestions {
		q.Sector = SectorBase
		out[i] = q
	}
	return out
}
