package models

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

const (
	// DefaultRecipeImage is assigned when a recipe is created or updated
	// without an image reference.
	DefaultRecipeImage = "/default-recipe.jpg"
	// DefaultRecipeCategory is assigned when no category is supplied.
	DefaultRecipeCategory = "General"
	// FirstTicket is the display ticket assigned to the first recipe ever
	// created. Tickets only grow from there and are never reused.
	FirstTicket = 500
)

// Recipe is a user-owned recipe with its embedded reviews.
//
// Ingredients and Instructions are stored as newline-joined text and expanded
// back into line lists at the API boundary. Rating and RatingsCount are
// derived from Reviews and must never be set from client input.
type Recipe struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	User         User      `gorm:"foreignKey:UserID" json:"user"`
	Title        string    `gorm:"uniqueIndex;not null" json:"title"`
	Image        string    `gorm:"not null;default:'/default-recipe.jpg'" json:"image"`
	Ingredients  string    `gorm:"type:text;not null" json:"ingredients"`
	Instructions string    `gorm:"type:text;not null" json:"instructions"`
	CookingTime  int       `gorm:"not null" json:"cooking_time"`
	Category     string    `gorm:"not null;default:'General'" json:"category"`
	Ticket       int64     `gorm:"uniqueIndex;not null" json:"ticket"`
	Reviews      []Review  `gorm:"foreignKey:RecipeID" json:"reviews,omitempty"`
	Rating       float64   `gorm:"not null;default:0" json:"rating"`
	RatingsCount int       `gorm:"not null;default:0" json:"ratings_count"`
	Completed    bool      `gorm:"not null;default:false" json:"completed"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IngredientLines returns the stored ingredient text split back into lines.
func (r *Recipe) IngredientLines() []string {
	return SplitLines(r.Ingredients)
}

// InstructionLines returns the stored instruction text split back into lines.
func (r *Recipe) InstructionLines() []string {
	return SplitLines(r.Instructions)
}

// Review is a single user's rating and comment on a recipe. A user may
// review a given recipe at most once.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RecipeID  uint      `gorm:"not null;index;uniqueIndex:idx_reviews_recipe_user" json:"recipe_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reviews_recipe_user" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text;not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TicketCounter backs the monotonically increasing recipe ticket sequence.
type TicketCounter struct {
	Name  string `gorm:"primaryKey"`
	Value int64  `gorm:"not null"`
}

// Lines accepts either a JSON array of strings or a single pre-joined string,
// so clients can submit ingredients/instructions in either form.
type Lines []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *Lines) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*l = SplitLines(s)
	return nil
}

// Join returns the lines in their stored newline-joined form.
func (l Lines) Join() string {
	return strings.Join(l, "\n")
}

// SplitLines splits stored text into its logical line list. Empty text
// yields an empty list rather than [""].
func SplitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	return strings.Split(text, "\n")
}
