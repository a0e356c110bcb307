// Package schema holds the insertable shapes clients may send for each record
// kind and turns raw decoded JSON objects into them.
//
// Parsing checks presence and primitive types only. Representation changes
// such as tag normalization or mapping empty strings to null belong to the
// storage layer.
package schema

// Entity names used in validation errors.
const (
	EntityUser             = "user"
	EntityContact          = "contact"
	EntityPortfolioContent = "portfolio content"
	EntityProject          = "project"
)

type InsertUser struct {
	Username string
	Password string
}

type InsertContact struct {
	Name        string
	Email       string
	ProjectType string
	Message     string
}

// InsertPortfolioContent is the body of a section update. The section name is
// passed to storage separately.
type InsertPortfolioContent struct {
	Title       *string
	Description *string
	Content     *string
	ImageURL    *string
	Metadata    *string
}

type InsertProject struct {
	Title       string
	Description string
	ImageURL    *string
	Tags        Tags
	GithubURL   *string
	DemoURL     *string
	Featured    *bool
}

// Optional is a patch value together with whether the client sent it.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// ProjectPatch is a partial project update. Unset fields keep their stored
// values.
type ProjectPatch struct {
	Title       Optional[string]
	Description Optional[string]
	ImageURL    Optional[*string]
	Tags        Tags
	GithubURL   Optional[*string]
	DemoURL     Optional[*string]
	Featured    Optional[bool]
}

// Tags records the tags value exactly as the client shaped it: a list, a
// single string, or nothing.
type Tags struct {
	List   []string
	IsList bool
	Scalar string
}

// TagList returns Tags carrying a list.
func TagList(tags ...string) Tags {
	if tags == nil {
		tags = []string{}
	}
	return Tags{List: tags, IsList: true}
}

// TagScalar returns Tags carrying a single string.
func TagScalar(tag string) Tags {
	return Tags{Scalar: tag}
}
