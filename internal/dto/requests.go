package dto

// RegisterRequest - данные регистрации.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest - данные входа.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CreateJobRequest - новая заявка клиента.
type CreateJobRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Location    string   `json:"location"`
	Zipcode     string   `json:"zipcode" binding:"required"`
	BudgetMin   *float64 `json:"budget_min"`
	BudgetMax   *float64 `json:"budget_max"`
	Timeline    string   `json:"timeline"`
}

// UpdateJobStatusRequest - смена статуса заявки.
type UpdateJobStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateQuoteRequest - отклик мастера на заявку.
type CreateQuoteRequest struct {
	JobID             string  `json:"job_id" binding:"required"`
	Message           string  `json:"message" binding:"required"`
	Price             float64 `json:"price" binding:"required,gt=0"`
	EstimatedDuration string  `json:"estimated_duration"`
}

// UpdateQuoteStatusRequest - решение клиента по отклику.
type UpdateQuoteStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateProfileRequest - обновление профиля мастера.
type UpdateProfileRequest struct {
	Bio             *string  `json:"bio"`
	Services        []string `json:"services"`
	ServiceAreas    []string `json:"service_areas"`
	HourlyRate      *float64 `json:"hourly_rate"`
	YearsExperience *int     `json:"years_experience"`
	BudgetActive    *bool    `json:"budget_active"`
}

// CreateReviewRequest - отзыв клиента о мастере.
type CreateReviewRequest struct {
	JobID   string `json:"job_id" binding:"required"`
	ProID   string `json:"pro_id" binding:"required"`
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

// SendMessageRequest - новое сообщение в диалоге.
type SendMessageRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	ReceiverID     string `json:"receiver_id" binding:"required"`
	Message        string `json:"message" binding:"required"`
}

// CreateCheckoutRequest - покупка пакета лид-кредитов.
// Клиент выбирает только пакет: суммы задаёт серверный каталог.
type CreateCheckoutRequest struct {
	PackageID string `json:"package_id" binding:"required"`
	OriginURL string `json:"origin_url" binding:"required"`
}

// CreateCategoryRequest - новая категория услуг.
type CreateCategoryRequest struct {
	Name         string `json:"name" binding:"required"`
	Value        string `json:"value" binding:"required"`
	Icon         string `json:"icon"`
	Color        string `json:"color"`
	IsActive     *bool  `json:"is_active"`
	DisplayOrder int    `json:"display_order"`
}

// UpdateCategoryRequest - обновление категории услуг.
type UpdateCategoryRequest struct {
	Name         *string `json:"name"`
	Icon         *string `json:"icon"`
	Color        *string `json:"color"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder *int    `json:"display_order"`
}

// UpdateSettingsRequest - обновление настроек платформы.
type UpdateSettingsRequest struct {
	LeadFee            *float64 `json:"lead_fee"`
	PlatformCommission *float64 `json:"platform_commission"`
	MinQuoteAmount     *float64 `json:"min_quote_amount"`
	MaxQuoteAmount     *float64 `json:"max_quote_amount"`
	WeeklyBudgetMin    *float64 `json:"weekly_budget_min"`
	AutoApprovePros    *bool    `json:"auto_approve_pros"`
	EnableStripe       *bool    `json:"enable_stripe"`
}
