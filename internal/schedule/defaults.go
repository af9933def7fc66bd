package schedule

// Week maps each teaching day to its ordered sequence of blocks.
// Order within a day is insertion order; the views treat it as time order.
type Week map[DayKey][]Block

// Quote is the daily spark shown next to the quick-notes panel.
type Quote struct {
	ID     string `json:"id"`
	Quote  string `json:"quote"`
	Author string `json:"author"`
}

// DailyQuote is the bundled spark quote.
var DailyQuote = Quote{
	ID:     "quote-1",
	Quote:  "Teaching is not about answering questions but about raising questions - opening doors for them in places they could not imagine.",
	Author: "Y.B. Yeats",
}

// DefaultWeek returns a fresh copy of the bundled sample week, used until
// the user has built a schedule of their own.
func DefaultWeek() Week {
	week := Week{
		Monday: {
			{
				ID:       "mon-math",
				Title:    "Math Block",
				Time:     "8:00 AM - 9:30 AM",
				Location: "Room 204",
				Topic:    "Intro to Algebra",
				Type:     TypeClass,
				Resources: []ResourceLink{
					{Label: "Materials", Href: "#"},
					{Label: "Lesson Plan", Href: "#"},
					{Label: "Student Notes", Href: "#"},
				},
			},
			{
				ID:       "mon-english",
				Title:    "English Literature",
				Time:     "10:00 AM - 11:00 AM",
				Location: "Room 101",
				Topic:    "Short Stories",
				Type:     TypeClass,
				Resources: []ResourceLink{
					{Label: "Reading List", Href: "#"},
					{Label: "Discussion Guide", Href: "#"},
				},
			},
			{
				ID:       "mon-pe",
				Title:    "Physical Education",
				Time:     "1:00 PM - 2:00 PM",
				Location: "Gym",
				Topic:    "Team Challenges",
				Type:     TypeClass,
			},
		},
		Tuesday: {
			{
				ID:       "tue-science",
				Title:    "Science Lab",
				Time:     "9:00 AM - 10:30 AM",
				Location: "Lab 1",
				Topic:    "Photosynthesis Experiment",
				Type:     TypeClass,
				Resources: []ResourceLink{
					{Label: "Lab Prep", Href: "#"},
					{Label: "Data Sheet", Href: "#"},
				},
			},
			{
				ID:       "tue-art",
				Title:    "Art Class",
				Time:     "11:00 AM - 12:00 PM",
				Location: "Art Studio",
				Topic:    "Color Theory",
				Type:     TypeClass,
			},
			{
				ID:       "tue-parent",
				Title:    "Parent Meeting",
				Time:     "2:30 PM - 3:30 PM",
				Location: "Office",
				Topic:    "Progress Updates",
				Type:     TypeMeeting,
			},
		},
		Wednesday: {
			{
				ID:       "wed-math",
				Title:    "Math Block",
				Time:     "8:00 AM - 9:30 AM",
				Location: "Room 204",
				Topic:    "Problem Solving",
				Type:     TypeClass,
				Resources: []ResourceLink{
					{Label: "Materials", Href: "#"},
					{Label: "Lesson Plan", Href: "#"},
				},
			},
			{
				ID:       "wed-science",
				Title:    "Science Lab",
				Time:     "10:30 AM - 11:30 AM",
				Location: "Lab 1",
				Topic:    "Plant Cells",
				Type:     TypeClass,
				Resources: []ResourceLink{
					{Label: "Lab Prep", Href: "#"},
					{Label: "Data Sheet", Href: "#"},
				},
			},
			{
				ID:       "wed-reset",
				Title:    "Mindful Reset",
				Time:     "1:00 PM - 1:20 PM",
				Location: "Quiet Space",
				Topic:    "Breathe. The best way to predict the future is to create it.",
				Type:     TypeReset,
			},
			{
				ID:       "wed-meeting",
				Title:    "Staff Meeting",
				Time:     "2:00 PM - 3:00 PM",
				Location: "Conference Room A",
				Topic:    "Curriculum Review",
				Type:     TypeMeeting,
			},
		},
		Thursday: {
			{
				ID:       "thu-history",
				Title:    "History Class",
				Time:     "9:00 AM - 10:30 AM",
				Location: "Room 110",
				Topic:    "Primary Sources",
				Type:     TypeClass,
			},
			{
				ID:       "thu-music",
				Title:    "Music Theory",
				Time:     "11:00 AM - 12:00 PM",
				Location: "Music Room",
				Topic:    "Rhythm & Tempo",
				Type:     TypeClass,
			},
			{
				ID:       "thu-plan",
				Title:    "Lesson Planning",
				Time:     "2:00 PM - 3:00 PM",
				Location: "Desk",
				Topic:    "Next Week Outline",
				Type:     TypeMeeting,
			},
		},
		Friday: {
			{
				ID:       "fri-quiz",
				Title:    "Quiz Review",
				Time:     "8:30 AM - 9:30 AM",
				Location: "Room 204",
				Topic:    "Weekly Check-in",
				Type:     TypeClass,
			},
			{
				ID:       "fri-bio",
				Title:    "Biology",
				Time:     "10:00 AM - 11:00 AM",
				Location: "Lab 2",
				Topic:    "Ecosystems",
				Type:     TypeClass,
			},
			{
				ID:       "fri-project",
				Title:    "Class Project",
				Time:     "1:00 PM - 2:00 PM",
				Location: "Room 204",
				Topic:    "Presentation Prep",
				Type:     TypeClass,
			},
		},
	}
	return week
}
