package catalog

import (
	"fmt"

	pstrings "adequa/pkg/platform/strings"
)

// Profile is the part of an organization profile that drives composition.
type Profile struct {
	Sectors       []Sector
	CustomSectors []string
}

// Compose builds the ordered catalog for a profile: the base questions, then
// each declared sector's extension set in declaration order, then one open-text
// question per custom sector. Unknown or repeated sectors are skipped. The
// result depends only on the profile.
func Compose(p Profile) Catalog {
	out := Base()

	seen := make(map[Sector]struct{}, len(p.Sectors))
	for _, s := range p.Sectors {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		d, ok := lookupSector(s)
		if !ok {
			continue
		}
		out = append(out, sectorQuestions(d)...)
	}

	for i, name := range pstrings.DedupeFold(p.CustomSectors) {
		out = append(out, customQuestion(i, name))
	}
	return out
}

func customQuestion(position int, name string) Question {
	return Question{
		ID:          CustomQuestionIDBase + position,
		Prompt:      fmt.Sprintf("Descreva como o setor %q trata dados pessoais e quais controles de proteção adota.", name),
		Kind:        KindText,
		Sector:      SectorCustom,
		SectorLabel: name,
		Description: "Pergunta genérica para setor informado pela organização.",
	}
}
