package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/churn/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{
		m.theme.Title.Render("🏦 Customer Churn Prediction"),
		m.theme.Subtitle.Render("Predict whether a bank customer is likely to leave the bank."),
		m.renderForm(),
		"",
		m.renderButton(),
		"",
	}

	switch m.state {
	case StatePredicting, StateCollecting:
		sections = append(sections, m.theme.StatusPending.Render("Predicting churn..."))
	case StateDisplaying:
		if m.assessment != nil {
			sections = append(sections, m.renderAssessment(*m.assessment))
		}
	case StateIdle:
		if m.lastError != nil {
			sections = append(sections, m.theme.StatusError.Render("✗ "+m.lastError.Error()))
		}
	}

	sections = append(sections, "", m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderForm() string {
	rows := make([]string, 0, len(m.fields))
	for i, f := range m.fields {
		label := m.theme.Label
		cursor := "  "
		if i == m.focus {
			label = m.theme.FocusedLabel
			cursor = "› "
		}
		rows = append(rows, cursor+label.Render(f.label)+m.theme.Value.Render(f.display()))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderButton() string {
	style := m.theme.Button
	if m.focus == len(m.fields) {
		style = m.theme.FocusedButton
	}
	return "  " + style.Render("Predict Churn")
}

func (m Model) renderAssessment(a model.Assessment) string {
	boxes := make([]string, 0, len(a.Models))
	for _, r := range a.Models {
		body := fmt.Sprintf("%s\nPrediction: %s\nProbability: %s",
			m.theme.Value.Bold(true).Render(r.DisplayName+" Model:"),
			r.Result.Label(),
			FormatPercent(r.Result.ChurnProbability),
		)
		boxes = append(boxes, m.theme.ResultBox.Render(body))
	}

	risk := m.theme.RiskLow
	if a.RiskLabel == model.RiskHigh {
		risk = m.theme.RiskHigh
	}

	lines := []string{
		m.theme.Title.Render("Prediction Results"),
		lipgloss.JoinHorizontal(lipgloss.Top, boxes...),
		"",
		fmt.Sprintf("Average churn risk: %s  %s",
			m.theme.Value.Render(FormatPercent(a.AverageProbability)),
			risk.Render(a.RiskLabel)),
		"",
		m.theme.Title.Render("Recommendations"),
	}

	if len(a.Recommendations) == 0 {
		lines = append(lines, m.theme.Muted.Render("No specific actions recommended."))
	}
	for _, rec := range a.Recommendations {
		lines = append(lines, fmt.Sprintf("%s %s %s", rec.Icon, rec.Text, m.priorityStyle(rec.Priority).Render("("+string(rec.Priority)+" priority)")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) priorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return m.theme.PriorityHigh
	case model.PriorityMedium:
		return m.theme.PriorityMedium
	default:
		return m.theme.PriorityLow
	}
}

// FormatPercent renders a probability with two decimals, e.g. 0.4567 as 45.67%.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}
