package content

// PlaceholderProjects is rendered in place of the project feed when it
// cannot be loaded, so the projects section is never empty.
func PlaceholderProjects() []Project {
	return []Project{
		{
			Title:       "Project Data Loading...",
			Description: "Your projects are being fetched from the local JSON. If you see this for a long time, make sure the site is served over HTTP and that content/projects.json exists.",
			GithubURL:   "#",
		},
	}
}

// About is the default text of the about section.
var About = "I love building software that is both useful and fun, and I am always curious about how things work behind the scenes. Most of my projects start with a simple idea and turn into a chance to learn something new."
