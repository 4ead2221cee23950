package services

import (
	"strconv"

	"notebook_forms_go/services/i18n"
	"notebook_forms_go/services/layout"
)

// docLabels resolves the localized text printed on generated documents.
type docLabels struct {
	locale string
}

func labelsFor(locale string) docLabels {
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	return docLabels{locale: locale}
}

func (l docLabels) t(key string, args ...map[string]interface{}) string {
	return i18n.Translate(l.locale, key, args...)
}

// TemplateName is the localized display name of a template kind.
func (l docLabels) TemplateName(kind layout.Kind) string {
	return l.t("template." + string(kind) + ".name")
}

// Weekday returns the short weekday name for a Monday-first index.
func (l docLabels) Weekday(i int) string {
	return l.t("weekday." + strconv.Itoa(i))
}

// Section returns the caption of a labelled band.
func (l docLabels) Section(label string) string {
	return l.t("document.section." + label)
}

// Footer returns the caption printed at the bottom of every page.
func (l docLabels) Footer(custom string) string {
	if custom != "" {
		return custom
	}
	return l.t("document.footer")
}

// PageTitle is the heading printed in a page's header band.
func (l docLabels) PageTitle(plan *layout.Plan, page layout.Page) string {
	switch plan.Kind {
	case layout.KindDiary:
		return l.t("document.diary_title", map[string]interface{}{
			"date":    page.Date.Format("2006-01-02"),
			"weekday": l.Weekday(layout.MondayIndex(page.Date.Weekday())),
		})
	case layout.KindCalendar:
		return l.t("document.calendar_title", map[string]interface{}{
			"year":  page.Date.Year(),
			"month": int(page.Date.Month()),
			"name":  l.t("month." + strconv.Itoa(int(page.Date.Month()))),
		})
	}
	return l.TemplateName(plan.Kind)
}
