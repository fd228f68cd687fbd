package model

import "time"

// Status is workflow state of an inquiry
type Status string

const (
	// StatusPending means inquiry is submitted and waits for processing
	StatusPending Status = "PENDING"
	// StatusProcessing means inquiry is being worked on by staff
	StatusProcessing Status = "PROCESSING"
	// StatusQuoted means price quote has been sent to the customer
	StatusQuoted Status = "QUOTED"
	// StatusCompleted means inquiry is closed successfully
	StatusCompleted Status = "COMPLETED"
	// StatusCancelled means inquiry is closed without a deal
	StatusCancelled Status = "CANCELLED"
)

// Urgency is customer-declared priority tier
type Urgency string

const (
	// UrgencyUrgent means customer needs the quote as soon as possible
	UrgencyUrgent Urgency = "URGENT"
	// UrgencyNormal is the default priority
	UrgencyNormal Urgency = "NORMAL"
	// UrgencyFlexible means customer is not in a hurry
	UrgencyFlexible Urgency = "FLEXIBLE"
)

// Inquiry is customer request for a product quote
type Inquiry struct {
	ID            string     `json:"id"`
	InquiryNumber string     `json:"inquiryNumber"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	CustomerEmail string     `json:"customerEmail,omitempty"`
	Company       string     `json:"company,omitempty"`
	ProductName   string     `json:"productName"`
	Quantity      int        `json:"quantity"`
	Requirements  string     `json:"requirements"`
	Urgency       Urgency    `json:"urgency"`
	Status        Status     `json:"status"`
	QuotedPrice   string     `json:"quotedPrice,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	AdminReply    string     `json:"adminReply,omitempty"`
	RepliedAt     *time.Time `json:"repliedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// InquiryStats holds per-status counts over the whole collection
type InquiryStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Quoted     int `json:"quoted"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
}

// Pagination describes a 1-indexed page window
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}
