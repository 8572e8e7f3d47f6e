package ui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/ui/components"
)

type statsLoadedMsg struct {
	gen     int
	buckets []api.OrdersCountPrice
	avg     *api.AvgPrice
	err     error
}

// StatsModel shows per-client order statistics: daily count/price
// buckets plus the average order price.
type StatsModel struct {
	client    *api.Client
	userID    int64
	userLabel string

	gen     int
	loading bool
	buckets []api.OrdersCountPrice
	avg     *api.AvgPrice

	width  int
	height int
}

func NewStatsModel(client *api.Client, userID int64, userLabel string) StatsModel {
	return StatsModel{client: client, userID: userID, userLabel: userLabel, loading: true}
}

func (m StatsModel) Init() tea.Cmd {
	return m.fetchCmd()
}

func (m StatsModel) fetchCmd() tea.Cmd {
	client, userID, gen := m.client, m.userID, m.gen
	return func() tea.Msg {
		buckets, err := client.OrdersCountPriceStat(userID)
		if err != nil {
			return statsLoadedMsg{gen: gen, err: err}
		}
		avg, err := client.AvgPriceStat(userID)
		if err != nil {
			return statsLoadedMsg{gen: gen, err: err}
		}
		return statsLoadedMsg{gen: gen, buckets: buckets, avg: avg}
	}
}

func (m StatsModel) Update(msg tea.Msg) (StatsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			return m, func() tea.Msg { return errMsg{msg.err} }
		}
		m.buckets = msg.buckets
		m.avg = msg.avg
		return m, nil

	case tea.KeyMsg:
		if isKey(msg, "r") && !m.loading {
			m.gen++
			m.loading = true
			return m, m.fetchCmd()
		}
	}
	return m, nil
}

func (m *StatsModel) setSize(width, height int) {
	m.width = width
	m.height = height
}

func (m StatsModel) View() string {
	if m.loading {
		return components.Box(MutedStyle.Render("Loading statistics..."), m.width)
	}

	columns := []components.TableColumn{
		{Header: "Date", Width: 12},
		{Header: "Orders", Width: 8, Align: lipgloss.Right},
		{Header: "Revenue", Width: 12, Align: lipgloss.Right},
	}
	rows := make([][]string, 0, len(m.buckets))
	var totalCount int
	var totalPrice float64
	for _, b := range m.buckets {
		rows = append(rows, []string{
			b.Date,
			strconv.Itoa(b.Count),
			strconv.FormatFloat(b.Price, 'f', 2, 64),
		})
		totalCount += b.Count
		totalPrice += b.Price
	}

	var content string
	if len(rows) == 0 {
		content = MutedStyle.Render("No orders recorded yet.")
	} else {
		content = components.TableGrid(columns, rows, m.width-6, -1)
		content += "\n" + components.InfoRow("Total orders", strconv.Itoa(totalCount))
		content += "\n" + components.InfoRow("Total revenue", strconv.FormatFloat(totalPrice, 'f', 2, 64))
	}
	if m.avg != nil {
		content += "\n" + components.InfoRow("Average price", strconv.FormatFloat(m.avg.Avg, 'f', 2, 64))
	}
	content += "\n\n" + MutedStyle.Render("r: refresh · esc: back")

	return components.TitledBox(fmt.Sprintf("Statistics — %s", m.userLabel), content, m.width)
}
