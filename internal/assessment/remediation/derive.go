package remediation

import (
	"fmt"

	"adequa/internal/assessment/catalog"
)

// Sector-task urgency by answer.
const (
	sectorNegativeDueDays = 15
	sectorPartialDueDays  = 30
)

// SectorTemplateKey is the stable trigger identity of a sector-scoped task.
func SectorTemplateKey(sector string, questionID int) string {
	return fmt.Sprintf("sector:%s:%d", sector, questionID)
}

// Derive selects the tasks the answers call for using the embedded library.
func Derive(c catalog.Catalog, answers []catalog.Answer) []Task {
	return DefaultLibrary().Derive(c, answers)
}

// Derive selects the tasks the answers call for. The result is unpersisted:
// ids, owner and timestamps are stamped by the Engine.
//
// Order: library templates in declaration order (baseline ones always, the
// conditional ones when their rule matches), then sector tasks in catalog order.
func (l *Library) Derive(c catalog.Catalog, answers []catalog.Answer) []Task {
	triggered := make(map[string]bool)
	for i, q := range c {
		a := answerAt(answers, i)
		for _, r := range l.rules {
			if r.Match(q, a) {
				triggered[r.TemplateKey] = true
			}
		}
	}

	var out []Task
	for _, t := range l.templates {
		if t.Always || triggered[t.Key] {
			out = append(out, fromTemplate(t))
		}
	}

	for i, q := range c {
		if q.IsBase() || q.IsCustom() {
			continue
		}
		if task, ok := sectorTask(q, answerAt(answers, i)); ok {
			out = append(out, task)
		}
	}
	return out
}

func answerAt(answers []catalog.Answer, i int) catalog.Answer {
	if i < len(answers) {
		return answers[i]
	}
	return catalog.Answer{}
}

func fromTemplate(t Template) Task {
	return Task{
		TemplateKey: t.Key,
		Title:       t.Title,
		Description: t.Description,
		Category:    t.Category,
		Priority:    t.Priority,
		Status:      StatusPending,
		Steps:       append([]string(nil), t.Steps...),
		DueInDays:   t.DueInDays,
	}
}

func sectorTask(q catalog.Question, a catalog.Answer) (Task, bool) {
	var (
		priority Priority
		dueDays  int
	)
	switch {
	case a.IsNegative():
		priority, dueDays = PriorityHigh, sectorNegativeDueDays
	case a.IsPartial():
		priority, dueDays = PriorityMedium, sectorPartialDueDays
	default:
		return Task{}, false
	}

	label := q.SectorLabel
	if label == "" {
		label = q.Sector
	}
	return Task{
		TemplateKey: SectorTemplateKey(q.Sector, q.ID),
		Title:       fmt.Sprintf("[%s] %s", label, q.Prompt),
		Description: fmt.Sprintf("Adequar o setor %s ao requisito: %s", label, q.Prompt),
		Category:    q.Sector,
		Sector:      q.Sector,
		QuestionID:  q.ID,
		Priority:    priority,
		Status:      StatusPending,
		Steps: []string{
			"Avaliar a situação atual do setor frente ao requisito",
			"Definir responsável e plano de ação",
			"Implementar os controles necessários",
			"Anexar evidência da adequação",
		},
		DueInDays: dueDays,
	}, true
}
