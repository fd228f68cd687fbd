package model

import "time"

// Category is product category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is catalog product entity
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       string    `json:"price"`
	Images      []string  `json:"images"`
	IsHot       bool      `json:"isHot"`
	IsActive    bool      `json:"isActive"`
	CategoryID  string    `json:"categoryId"`
	Category    *Category `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CaseStudy is completed project showcase entity
type CaseStudy struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	ProjectType string    `json:"projectType"`
	Area        string    `json:"area,omitempty"`
	ClientName  string    `json:"clientName,omitempty"`
	Images      []string  `json:"images"`
	Sort        int       `json:"sort"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
