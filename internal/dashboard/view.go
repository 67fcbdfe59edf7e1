package dashboard

import (
	"fmt"
	"strings"
	"time"
)

const (
	barWidth     = 30
	nameColWidth = 24
)

// renderDashboard renders the complete live view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderGauges())
	b.WriteString("\n\n")

	b.WriteString(m.renderProcessTable())
	b.WriteString("\n")

	b.WriteString(m.renderDiskTable())

	if m.view.NetworkPanel {
		b.WriteString("\n")
		b.WriteString(m.renderNetworkPanel())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// renderHeader renders the title line with host identity and uptime.
func (m Model) renderHeader() string {
	title := TitleStyle.Render("sour")

	host := m.view.Snapshot.Hostname
	if host == "" {
		host = "local"
	}
	info := LabelStyle.Render(fmt.Sprintf(" | %s | up %s", host, formatUptime(m.view.Snapshot.Uptime)))

	line := title + info
	if m.view.Frozen {
		line += FrozenBadgeStyle.Render("  ⏸ FROZEN")
	}
	return HeaderStyle.Render(line)
}

// renderGauges renders the CPU, memory, and disk percentage bars.
func (m Model) renderGauges() string {
	rows := []struct {
		label   string
		percent float64
	}{
		{"CPU", m.view.Snapshot.CPUPercent},
		{"Memory", m.view.Snapshot.MemPercent},
		{"Disk", m.view.Snapshot.DiskPercent},
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		label := LabelStyle.Render(fmt.Sprintf(" %-7s", row.label))
		value := MetricStyle(row.percent).Render(fmt.Sprintf(" %5.1f%%", row.percent))
		b.WriteString(label + ProgressBar(barWidth, row.percent) + value)
	}
	return b.String()
}

// renderProcessTable renders the ranked process list.
func (m Model) renderProcessTable() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Top processes"))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(fmt.Sprintf("   %5s  %-*s %7s %7s", "PID", nameColWidth, "NAME", "CPU%", "MEM%")))

	if len(m.view.Processes) == 0 {
		b.WriteString("\n")
		b.WriteString(MutedStyle.Render("   no process data yet"))
		return b.String()
	}

	for i, p := range m.view.Processes {
		b.WriteString("\n")
		idx := MutedStyle.Render(fmt.Sprintf("%2d", i+1))
		row := fmt.Sprintf(" %5d  %-*s ", p.PID, nameColWidth, truncateName(p.Name, nameColWidth))
		cpu := MetricStyle(p.CPUPercent).Render(fmt.Sprintf("%6.1f%%", p.CPUPercent))
		mem := MetricStyle(p.MemPercent).Render(fmt.Sprintf("%6.1f%%", p.MemPercent))
		b.WriteString(" " + idx + ValueStyle.Render(row) + cpu + " " + mem)
	}
	return b.String()
}

// renderDiskTable renders per-mount usage.
func (m Model) renderDiskTable() string {
	if len(m.view.Disks) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Disks"))
	b.WriteString("\n")
	b.WriteString(MutedStyle.Render(fmt.Sprintf("   %-16s %-12s %7s %10s %10s", "MOUNT", "FSTYPE", "USED%", "FREE", "TOTAL")))

	for _, d := range m.view.Disks {
		b.WriteString("\n")
		row := fmt.Sprintf("   %-16s %-12s ", truncateName(d.Mount, 16), truncateName(d.Fstype, 12))
		used := MetricStyle(d.UsedPercent).Render(fmt.Sprintf("%6.1f%%", d.UsedPercent))
		sizes := ValueStyle.Render(fmt.Sprintf(" %9s %9s", formatBytes(d.FreeBytes), formatBytes(d.TotalBytes)))
		b.WriteString(ValueStyle.Render(row) + used + sizes)
	}
	b.WriteString("\n")
	return b.String()
}

// renderNetworkPanel renders throughput rates and speed test state.
func (m Model) renderNetworkPanel() string {
	var lines []string

	lines = append(lines, HeaderStyle.Render("Network"))
	lines = append(lines, fmt.Sprintf("  %s %s   %s %s",
		LabelStyle.Render("▼ recv"), ValueStyle.Render(FormatRate(m.view.Rate.RecvPerSec)),
		LabelStyle.Render("▲ sent"), ValueStyle.Render(FormatRate(m.view.Rate.SentPerSec))))

	switch {
	case m.view.SpeedtestRunning && m.view.SpeedtestProgress != nil:
		p := m.view.SpeedtestProgress
		lines = append(lines, fmt.Sprintf("  %s %s %s %s",
			LabelStyle.Render("speed test:"),
			ValueStyle.Render(p.Phase.String()),
			ProgressBar(20, p.Percent),
			ValueStyle.Render(FormatRate(p.Speed))))

	case m.view.SpeedtestRunning:
		lines = append(lines, LabelStyle.Render("  speed test: starting..."))

	case m.view.SpeedtestResult != nil && m.view.SpeedtestResult.Failed():
		lines = append(lines, ErrorStyle.Render("  Speedtest failed: "+m.view.SpeedtestResult.Err))

	case m.view.SpeedtestResult != nil:
		r := m.view.SpeedtestResult
		lines = append(lines, fmt.Sprintf("  %s ▼ %s  ▲ %s",
			LabelStyle.Render("speed test:"),
			ValueStyle.Render(FormatRate(r.DownloadBPS)),
			ValueStyle.Render(FormatRate(r.UploadBPS))))
	}

	return strings.Join(lines, "\n") + "\n"
}

// renderFooter renders key hints and the last action status.
func (m Model) renderFooter() string {
	hints := FooterStyle.Render("k kill · n network/speed test · f freeze · q quit")
	if m.status == "" {
		return hints
	}
	return hints + "\n" + StatusStyle.Render(" "+m.status)
}

// renderKillPrompt renders the modal process selection prompt.
func (m Model) renderKillPrompt() string {
	var b strings.Builder

	b.WriteString(PromptTitleStyle.Render("Kill a process"))
	b.WriteString("\n\n")

	if len(m.prompt.processes) == 0 {
		b.WriteString(MutedStyle.Render("  no processes to select"))
	} else {
		b.WriteString(MutedStyle.Render(fmt.Sprintf("   #  %5s  %-*s %7s %7s", "PID", nameColWidth, "NAME", "CPU%", "MEM%")))
		for i, p := range m.prompt.processes {
			b.WriteString("\n")
			b.WriteString(ValueStyle.Render(fmt.Sprintf("  %2d  %5d  %-*s %6.1f%% %6.1f%%",
				i+1, p.PID, nameColWidth, truncateName(p.Name, nameColWidth), p.CPUPercent, p.MemPercent)))
		}
	}
	b.WriteString("\n\n")

	if m.mode == modeKilling {
		b.WriteString(StatusStyle.Render(" " + m.status))
		b.WriteString("\n")
		return PanelStyle.Render(b.String())
	}

	b.WriteString(LabelStyle.Render(" Number to kill (0 cancels): "))
	b.WriteString(m.prompt.input.View())
	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("enter confirm · esc cancel"))

	return PanelStyle.Render(b.String())
}

// FormatRate renders a bytes-per-second throughput in human units.
func FormatRate(bps float64) string {
	if bps < 0 {
		bps = 0
	}
	switch {
	case bps >= 1<<30:
		return fmt.Sprintf("%.2f GB/s", bps/(1<<30))
	case bps >= 1<<20:
		return fmt.Sprintf("%.1f MB/s", bps/(1<<20))
	case bps >= 1<<10:
		return fmt.Sprintf("%.1f KB/s", bps/(1<<10))
	default:
		return fmt.Sprintf("%.0f B/s", bps)
	}
}

// formatBytes renders a byte count in human units.
func formatBytes(n uint64) string {
	switch {
	case n >= 1<<40:
		return fmt.Sprintf("%.1fT", float64(n)/(1<<40))
	case n >= 1<<30:
		return fmt.Sprintf("%.1fG", float64(n)/(1<<30))
	case n >= 1<<20:
		return fmt.Sprintf("%.1fM", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1fK", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%dB", n)
	}
}

// formatUptime renders an uptime duration as days, hours, and minutes.
func formatUptime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, mins)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", mins, secs)
}

// truncateName shortens a name to fit a fixed column.
func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	if max <= 1 {
		return name[:max]
	}
	return name[:max-1] + "…"
}
