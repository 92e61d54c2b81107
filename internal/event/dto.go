// AngelaMos | 2026
// dto.go

package event

type CreateEventRequest struct {
	Title       string `json:"title"       validate:"required,notblank,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Date        string `json:"date"        validate:"required,isodate"`
	Shift       string `json:"shift"       validate:"required,oneof=1st 2nd night"`
}

var createMessages = map[string]string{
	"title.required": "Title is required",
	"title.notblank": "Title is required",
	"title":          "Title must be at most 200 characters",
	"description":    "Description must be at most 5000 characters",
	"date":           "Valid ISO date required",
	"shift":          "Invalid shift",
}
