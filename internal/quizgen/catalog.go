package quizgen

// Category groups related subjects in the picker.
type Category struct {
	Name     string   `json:"name"`
	Subjects []string `json:"subjects"`
}

// Catalog is the subject picker contents.
var Catalog = []Category{
	{
		Name: "Computer Science & Engineering",
		Subjects: []string{
			"Data Structures & Algorithms",
			"Programming Fundamentals",
			"Database Systems",
			"Software Engineering",
			"Computer Networks",
			"Operating Systems",
			"Machine Learning",
			"Artificial Intelligence",
			"Cybersecurity",
			"Web Development",
			"Mobile App Development",
			"Cloud Computing",
		},
	},
	{
		Name: "Engineering & Technology",
		Subjects: []string{
			"Electrical Engineering",
			"Mechanical Engineering",
			"Civil Engineering",
			"Chemical Engineering",
			"Electronics & Communication",
			"Digital Signal Processing",
			"Control Systems",
			"Embedded Systems",
		},
	},
	{
		Name: "Mathematics & Sciences",
		Subjects: []string{
			"Mathematics",
			"Physics",
			"Chemistry",
			"Biology",
			"Statistics",
			"Discrete Mathematics",
			"Linear Algebra",
			"Calculus",
		},
	},
	{
		Name: "General Studies",
		Subjects: []string{
			"History",
			"Literature",
			"Geography",
			"Psychology",
			"Economics",
			"Philosophy",
			"Art History",
		},
	},
}

// Subjects returns every subject in catalog order.
func Subjects() []string {
	var out []string
	for _, c := range Catalog {
		out = append(out, c.Subjects...)
	}
	return out
}

// IsSubject reports whether name is in the catalog.
func IsSubject(name string) bool {
	for _, c := range Catalog {
		for _, s := range c.Subjects {
			if s == name {
				return true
			}
		}
	}
	return false
}

// CategoryOf returns the category containing subject, or "" if none does.
func CategoryOf(subject string) string {
	for _, c := range Catalog {
		for _, s := range c.Subjects {
			if s == subject {
				return c.Name
			}
		}
	}
	return ""
}

// EstimatedMinutes is the suggested time budget for a quiz of n questions.
func EstimatedMinutes(n int) int {
	return n * 2
}
