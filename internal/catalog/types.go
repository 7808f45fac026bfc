package catalog

// EventRecord is one entry of the upcoming or past event listings.
type EventRecord struct {
	ID               int    `yaml:"id" json:"id"`
	Title            string `yaml:"title" json:"title"`
	Date             string `yaml:"date" json:"date"`
	Year             string `yaml:"year" json:"year"`
	Time             string `yaml:"time" json:"time"`
	Location         string `yaml:"location" json:"location"`
	Description      string `yaml:"description" json:"description"`
	Image            string `yaml:"image" json:"image"`
	Category         string `yaml:"category" json:"category"`
	RegistrationLink string `yaml:"registrationLink,omitempty" json:"registrationLink,omitempty"`
	DetailsLink      string `yaml:"eventDetailsLink,omitempty" json:"eventDetailsLink,omitempty"`
	Attendees        *int   `yaml:"attendees,omitempty" json:"attendees,omitempty"`
	Speakers         *int   `yaml:"speakers,omitempty" json:"speakers,omitempty"`
}

// Slug returns the detail slug referenced by DetailsLink, or "" when the
// record has no detail page.
func (e EventRecord) Slug() string {
	return SlugFromLink(e.DetailsLink)
}

// EventDetail is the full record behind an event detail page.
type EventDetail struct {
	Slug            string   `yaml:"-" json:"slug"`
	ID              int      `yaml:"id" json:"id"`
	Title           string   `yaml:"title" json:"title"`
	Date            string   `yaml:"date" json:"date"`
	Time            string   `yaml:"time" json:"time"`
	Location        string   `yaml:"location" json:"location"`
	Description     string   `yaml:"description" json:"description"`
	HeroImage       string   `yaml:"heroImage" json:"heroImage"`
	SummaryImage    string   `yaml:"summaryImage" json:"summaryImage"`
	Attendees       int      `yaml:"attendees" json:"attendees"`
	Speakers        int      `yaml:"speakers" json:"speakers"`
	Website         string   `yaml:"website,omitempty" json:"website,omitempty"`
	FullDescription string   `yaml:"fullDescription" json:"fullDescription"`
	Gallery         []string `yaml:"gallery" json:"gallery"`
}

// Stat is a headline number on the events page.
type Stat struct {
	Label string `yaml:"label" json:"label"`
	Value int    `yaml:"value" json:"value"`
	Icon  string `yaml:"icon" json:"icon"`
	// Plus appends "+" once the counter has reached Value.
	Plus bool `yaml:"plus,omitempty" json:"plus,omitempty"`
}

// Contact holds the organization's contact section.
type Contact struct {
	Organization     string   `yaml:"organization" json:"organization"`
	Address          []string `yaml:"address" json:"address"`
	Email            string   `yaml:"email" json:"email"`
	Phone            string   `yaml:"phone" json:"phone"`
	MapEmbedURL      string   `yaml:"mapEmbedURL" json:"mapEmbedURL"`
	RegistrationForm string   `yaml:"registrationForm" json:"registrationForm"`
}
