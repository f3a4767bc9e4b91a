package cli

import (
	"fmt"
	"strings"

	"github.com/Veraticus/churn/internal/artifact"
	"github.com/Veraticus/churn/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Percent renders a probability with two decimals.
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", p*100)
}

// RenderAssessment renders an assessment for plain terminal output.
func RenderAssessment(a model.Assessment) string {
	boxes := make([]string, 0, len(a.Models))
	for _, r := range a.Models {
		body := fmt.Sprintf("Prediction: %s\nProbability: %s", r.Result.Label(), Percent(r.Result.ChurnProbability))
		boxes = append(boxes, RenderBox(r.DisplayName+" Model", body))
	}

	risk := SuccessStyle
	if a.RiskLabel == model.RiskHigh {
		risk = ErrorStyle
	}

	var b strings.Builder
	b.WriteString(FormatTitle("Prediction Results"))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "%s %s  %s\n\n", ChartIcon, BoldStyle.Render("Average churn risk: "+Percent(a.AverageProbability)), risk.Bold(true).Render(a.RiskLabel))
	b.WriteString(BoldStyle.Render("Recommendations"))
	b.WriteString("\n")

	if len(a.Recommendations) == 0 {
		b.WriteString(SubtleStyle.Render("No specific actions recommended."))
		b.WriteString("\n")
	}
	for _, rec := range a.Recommendations {
		fmt.Fprintf(&b, "%s %s %s\n", rec.Icon, rec.Text, PriorityStyle(rec.Priority).Render("("+string(rec.Priority)+" priority)"))
	}
	return b.String()
}

// PriorityStyle returns the style for a recommendation priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	switch p {
	case model.PriorityHigh:
		return ErrorStyle
	case model.PriorityMedium:
		return WarningStyle
	default:
		return InfoStyle
	}
}

// RenderArtifacts renders a summary table of loaded artifacts.
func RenderArtifacts(infos map[string]artifact.Info, order []string) string {
	var b strings.Builder
	b.WriteString(FormatTitle("Model Artifacts"))
	b.WriteString("\n")
	for _, name := range order {
		info, ok := infos[name]
		if !ok {
			continue
		}
		line := fmt.Sprintf("%-14s %-20s features=%d", name, info.Kind, info.Features)
		if info.Trees > 0 {
			line += fmt.Sprintf(" trees=%d", info.Trees)
		}
		b.WriteString(FormatSuccess(line))
		b.WriteString("\n")
		if info.Path != "" {
			b.WriteString("  ")
			b.WriteString(SubtleStyle.Render(info.Path))
			b.WriteString("\n")
		}
	}
	return b.String()
}
