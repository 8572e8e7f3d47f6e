package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ordamat/waorder/cli/internal/api"
	"github.com/ordamat/waorder/cli/internal/ui/components"
)

// ReviewsModel is a read-only browse over marketplace reviews pulled
// in for a client's orders.
type ReviewsModel struct {
	client *api.Client
	list   ListModel[api.Review]

	width  int
	height int
}

func NewReviewsModel(client *api.Client, userID int64, userLabel string) ReviewsModel {
	src := listSource[api.Review]{
		title: fmt.Sprintf("Reviews — %s", userLabel),
		fetch: func(skip, limit int) ([]api.Review, error) {
			return client.ListReviews(userID, skip, limit)
		},
		id: func(r api.Review) int64 { return r.ID },
		columns: []listColumn[api.Review]{
			{title: "ID", width: 7, cell: func(r api.Review) string { return strconv.FormatInt(r.ID, 10) },
				compare: func(a, b api.Review) int { return int(a.ID - b.ID) }},
			{title: "Rating", width: 6, align: lipgloss.Center,
				cell:    func(r api.Review) string { return strconv.Itoa(r.Rating) },
				compare: func(a, b api.Review) int { return a.Rating - b.Rating }},
			{title: "Text", width: 44, cell: func(r api.Review) string {
				return components.SanitizeOneLine(r.Text)
			}},
			{title: "Created", width: 19, cell: func(r api.Review) string { return r.CreatedAt },
				compare: func(a, b api.Review) int { return strings.Compare(a.CreatedAt, b.CreatedAt) }},
		},
	}
	return ReviewsModel{client: client, list: newListModel(src)}
}

func (m ReviewsModel) Init() tea.Cmd {
	return m.list.Init()
}

func (m ReviewsModel) Update(msg tea.Msg) (ReviewsModel, tea.Cmd) {
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *ReviewsModel) setSize(width, height int) {
	m.width = width
	m.height = height
	m.list.width = width
	m.list.height = height
}

func (m ReviewsModel) View() string {
	return m.list.View()
}
