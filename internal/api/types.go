package api

// User is a client account of the order-automation service.
type User struct {
	ID                  int64              `json:"id"`
	Email               string             `json:"email"`
	FullName            string             `json:"full_name"`
	Role                string             `json:"role"`
	Disable             bool               `json:"disable"`
	KaspiLogin          string             `json:"kaspi_login"`
	KaspiPassword       string             `json:"kaspi_password"`
	TelegramID          string             `json:"telegram_id"`
	GreenAPIData        []GreenAPIInstance `json:"green_api_data"`
	LimitMessagesPerDay int                `json:"limit_messages_per_day"`
	CountMessagesSent   int                `json:"count_messages_sent"`
	BillingPlanID       *int64             `json:"billing_plan_id"`
	BillingPlanEnd      string             `json:"billing_plan_end"`
}

// GreenAPIInstance is one WhatsApp gateway instance bound to a client.
type GreenAPIInstance struct {
	IDInstance       string `json:"id_instance"`
	APITokenInstance string `json:"api_token_instance"`
	Phone            string `json:"phone"`
}

// Template is a per-client message template. StateStatus selects which
// order state transition triggers it.
type Template struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	StateStatus string `json:"state_status"`
	Template    string `json:"template"`
}

// Order is a marketplace order tracked for a client.
type Order struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	GroupID     *int64    `json:"group_id"`
	Code        string    `json:"code"`
	Status      string    `json:"status"`
	State       string    `json:"state"`
	StateStatus string    `json:"state_status"`
	Phone       string    `json:"phone"`
	IsSended    bool      `json:"is_sended"`
	CreatedAt   string    `json:"created_at"`
	ReviewID    *int64    `json:"review_id"`
	Customer    *Customer `json:"customer"`
}

// OrdersGroup is a named batch of orders that can be messaged at once.
type OrdersGroup struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	UserID      int64  `json:"user_id"`
	TotalOrders int    `json:"total_orders"`
	Template    string `json:"template"`
}

type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type Review struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	OrderID   *int64 `json:"order_id"`
	Rating    int    `json:"rating"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

// BillingPlan is a subscription tier clients can be assigned to.
type BillingPlan struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	LimitMessages int     `json:"limit_messages"`
	DurationDays  int     `json:"duration_days"`
}

// OrdersCountPrice is one bucket of the per-client order statistics.
type OrdersCountPrice struct {
	Date  string  `json:"date"`
	Count int     `json:"count"`
	Price float64 `json:"price"`
}

type AvgPrice struct {
	Avg float64 `json:"avg"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
