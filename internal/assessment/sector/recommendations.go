package sector

import "adequa/internal/assessment/catalog"

var recommendations = map[string][]string{
	catalog.SectorBase: {
		"Mantenha o inventário de dados atualizado e revisado ao menos uma vez por ano.",
		"Documente a base legal de cada operação de tratamento.",
	},
	string(catalog.SectorHumanResources): {
		"Defina prazos de retenção para dados de candidatos não contratados.",
		"Restrinja o acesso a dados de saúde ocupacional ao serviço médico.",
		"Informe os colaboradores sobre monitoramento de ferramentas corporativas.",
	},
	string(catalog.SectorHealth): {
		"Implemente trilha de auditoria em todos os acessos a prontuários.",
		"Criptografe dados de saúde em repouso e em trânsito.",
		"Formalize acordos de compartilhamento com operadoras e laboratórios.",
	},
	string(catalog.SectorFinance): {
		"Segregue dados de pagamento e siga os requisitos do PCI DSS.",
		"Registre a finalidade de cada consulta a bureaus de crédito.",
	},
	string(catalog.SectorMarketing): {
		"Mantenha registro de consentimento para cada canal de comunicação.",
		"Ofereça descadastro em um clique em todas as mensagens.",
		"Implante gerenciador de consentimento de cookies.",
	},
	string(catalog.SectorTechnology): {
		"Utilize dados anonimizados ou sintéticos em ambientes de teste.",
		"Revise acessos privilegiados trimestralmente.",
		"Centralize e proteja os logs de acesso a dados pessoais.",
	},
	string(catalog.SectorEducation): {
		"Colete consentimento específico dos responsáveis por alunos menores.",
		"Limite o compartilhamento de dados acadêmicos à finalidade educacional.",
	},
}

var genericRecommendations = []string{
	"Mapeie os dados pessoais tratados pelo setor e as respectivas finalidades.",
	"Avalie a necessidade de controles específicos com o Encarregado.",
}

func recommendationsFor(key string) []string {
	if r, ok := recommendations[key]; ok {
		return append([]string(nil), r...)
	}
	return append([]string(nil), genericRecommendations...)
}

func labelFor(key string) string {
	switch key {
	case catalog.SectorBase:
		return "Geral"
	case catalog.SectorCustom:
		return "Outros setores"
	default:
		return catalog.SectorLabel(catalog.Sector(key))
	}
}
