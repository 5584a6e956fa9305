package handler

// NavItem - пункт навигации
type NavItem struct {
	Path  string
	Label string
	Key   string
}

// Incident - исторический инцидент на странице Why
type Incident struct {
	Title  string
	Detail string
}

// Step - шаг на странице Working
type Step struct {
	Title  string
	Detail string
}

// Value - ценность на странице About
type Value struct {
	Name   string
	Detail string
}

// Tag - цветной бейдж на интро
type Tag struct {
	Label string
	Tone  string
}

// GetNavItems - пункты навбара в порядке отображения
func GetNavItems() []NavItem {
	return []NavItem{
		{Path: "/", Label: "Home", Key: "home"},
		{Path: "/why", Label: "Why", Key: "why"},
		{Path: "/working", Label: "Working", Key: "working"},
		{Path: "/about", Label: "About", Key: "about"},
		{Path: "/safety", Label: "Safety", Key: "safety"},
		{Path: "/dashboard", Label: "Dashboard", Key: "dashboard"},
	}
}

func GetIncidents() []Incident {
	return []Incident{
		{
			Title:  "Chernobyl (1986)",
			Detail: "Unaware responders and residents were exposed to radioactive fallout, leading to acute radiation sickness and long-term health impacts.",
		},
		{
			Title:  "Fukushima Daiichi (2011)",
			Detail: "Evacuation delays and limited awareness of plume spread increased exposure risks for nearby populations.",
		},
		{
			Title:  "Goiania Incident (1987)",
			Detail: "Scrap workers unknowingly handled a radiotherapy source, spreading contamination and causing radiation sickness.",
		},
	}
}

// GetHelpPoints - блок "How NuclrAlert helps"
func GetHelpPoints() []string {
	return []string{
		"Detects when you are near nuclear plants or mapped sources.",
		"Classifies risk by plant age and distance, issuing clear alerts.",
		"Shows interactive maps and safety guidance to minimize exposure.",
	}
}

func GetSteps() []Step {
	return []Step{
		{Title: "Load dataset", Detail: "We ingest curated nuclear plant data (name, latitude, longitude, age)."},
		{Title: "Locate user", Detail: "We resolve your position with geolocation and fallback to IP-based estimation."},
		{Title: "Compute distances", Detail: "Geodesic calculations determine exact distance to every plant."},
		{Title: "Classify risk", Detail: "Age thresholds and distance bands mark plants as Safe / Moderate / Dangerous."},
		{Title: "Render map", Detail: "Folium/Leaflet map shows you and nearby plants with safety colors."},
		{Title: "Notify & guide", Detail: "If you are on-site or in risk zones, we raise alerts and show guidance."},
	}
}

func GetValues() []Value {
	return []Value{
		{Name: "Clarity", Detail: "simple alerts, clear maps, and concise guidance."},
		{Name: "Safety-first", Detail: "highlight danger, moderate, and safe zones with urgency."},
		{Name: "Transparency", Detail: "show data sources and thresholds openly."},
	}
}

func GetGuidelines() []string {
	return []string{
		"Stay at least 50km from dangerous plants; evacuate if instructed.",
		"Limit outdoor exposure and seal indoor spaces if advised by authorities.",
		"Carry battery-powered radio/phone for official alerts; follow local guidance.",
		"Avoid consuming locally sourced food or water until safety is confirmed.",
		"If contaminated, remove outer clothing and wash exposed skin promptly.",
		"Know evacuation routes and shelter locations in your area.",
	}
}

func GetFeatureTags() []Tag {
	return []Tag{
		{Label: "Live Location", Tone: "safe"},
		{Label: "Interactive Maps", Tone: "info"},
		{Label: "Instant Alerts", Tone: "moderate"},
	}
}

// GetOverviewPoints - список "Project Overview" на интро
func GetOverviewPoints() []string {
	return []string{
		"Real-time location tracking with IP geolocation fallback.",
		"Automatic classification of plants by safety and age.",
		"On-site detection and instant alerting.",
		"Interactive Folium maps with safety overlays.",
	}
}

func GetTechStack() []string {
	return []string{"Go", "Fiber", "Flask", "Pandas", "Geopy", "Folium"}
}
