package schema

// ParseInsertUser validates a raw user object.
func ParseInsertUser(raw map[string]any) (InsertUser, error) {
	r := newReader(EntityUser, raw)
	in := InsertUser{
		Username: r.requiredString("username"),
		Password: r.requiredString("password"),
	}
	return in, r.verr.err()
}

// ParseInsertContact validates a raw contact form submission.
func ParseInsertContact(raw map[string]any) (InsertContact, error) {
	r := newReader(EntityContact, raw)
	in := InsertContact{
		Name:        r.requiredString("name"),
		Email:       r.requiredString("email"),
		ProjectType: r.requiredString("projectType"),
		Message:     r.requiredString("message"),
	}
	return in, r.verr.err()
}

// ParseInsertPortfolioContent validates a raw section body. Every field is
// optional; a "section" key in the body is ignored.
func ParseInsertPortfolioContent(raw map[string]any) (InsertPortfolioContent, error) {
	r := newReader(EntityPortfolioContent, raw)
	in := InsertPortfolioContent{
		Title:       r.optionalString("title"),
		Description: r.optionalString("description"),
		Content:     r.optionalString("content"),
		ImageURL:    r.optionalString("imageUrl"),
		Metadata:    r.optionalString("metadata"),
	}
	return in, r.verr.err()
}

// ParseInsertProject validates a raw project object.
func ParseInsertProject(raw map[string]any) (InsertProject, error) {
	r := newReader(EntityProject, raw)
	in := InsertProject{
		Title:       r.requiredString("title"),
		Description: r.requiredString("description"),
		ImageURL:    r.optionalString("imageUrl"),
		Tags:        r.tags("tags"),
		GithubURL:   r.optionalString("githubUrl"),
		DemoURL:     r.optionalString("demoUrl"),
		Featured:    r.optionalBool("featured"),
	}
	return in, r.verr.err()
}

// ParseProjectPatch validates a raw partial project object. Nothing is
// required, but title and description cannot be cleared.
func ParseProjectPatch(raw map[string]any) (ProjectPatch, error) {
	r := newReader(EntityProject, raw)
	p := ProjectPatch{
		Title:       r.patchString("title"),
		Description: r.patchString("description"),
		ImageURL:    r.patchNullableString("imageUrl"),
		Tags:        r.tags("tags"),
		GithubURL:   r.patchNullableString("githubUrl"),
		DemoURL:     r.patchNullableString("demoUrl"),
		Featured:    r.patchBool("featured"),
	}
	return p, r.verr.err()
}

type reader struct {
	raw  map[string]any
	verr *ValidationError
}

func newReader(entity string, raw map[string]any) *reader {
	return &reader{raw: raw, verr: &ValidationError{Entity: entity}}
}

// lookup reports the value for field and whether it was present and non-null.
func (r *reader) lookup(field string) (any, bool) {
	v, ok := r.raw[field]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r *reader) requiredString(field string) string {
	v, ok := r.lookup(field)
	if !ok {
		r.verr.add(field, ProblemRequired)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.verr.add(field, ProblemString)
	}
	return s
}

func (r *reader) optionalString(field string) *string {
	v, ok := r.lookup(field)
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		r.verr.add(field, ProblemString)
		return nil
	}
	return &s
}

func (r *reader) optionalBool(field string) *bool {
	v, ok := r.lookup(field)
	if !ok {
		return nil
	}
	b, ok := v.(bool)
	if !ok {
		r.verr.add(field, ProblemBoolean)
		return nil
	}
	return &b
}

func (r *reader) patchString(field string) Optional[string] {
	v, present := r.raw[field]
	if !present {
		return Optional[string]{}
	}
	if v == nil {
		r.verr.add(field, ProblemNotNullable)
		return Optional[string]{}
	}
	s, ok := v.(string)
	if !ok {
		r.verr.add(field, ProblemString)
		return Optional[string]{}
	}
	return Some(s)
}

func (r *reader) patchNullableString(field string) Optional[*string] {
	if _, present := r.raw[field]; !present {
		return Optional[*string]{}
	}
	return Some(r.optionalString(field))
}

func (r *reader) patchBool(field string) Optional[bool] {
	v, present := r.raw[field]
	if !present {
		return Optional[bool]{}
	}
	if v == nil {
		r.verr.add(field, ProblemNotNullable)
		return Optional[bool]{}
	}
	b, ok := v.(bool)
	if !ok {
		r.verr.add(field, ProblemBoolean)
		return Optional[bool]{}
	}
	return Some(b)
}

// tags accepts a string, an array of strings, or null.
func (r *reader) tags(field string) Tags {
	v, ok := r.lookup(field)
	if !ok {
		return Tags{}
	}
	switch t := v.(type) {
	case string:
		return TagScalar(t)
	case []string:
		return TagList(t...)
	case []any:
		list := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				r.verr.add(field, ProblemStringOrList)
				return Tags{}
			}
			list = append(list, s)
		}
		return TagList(list...)
	default:
		r.verr.add(field, ProblemStringOrList)
		return Tags{}
	}
}
