package entity

// Category is a static job category with its presentation metadata.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	IconName string `json:"iconName"`
	Color    string `json:"color"`
}

// Organizer is a static competition organizer with its presentation
// metadata.
type Organizer struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var categories = []Category{
	{ID: "it", Name: "تكنولوجيا المعلومات", IconName: "Code", Color: "#1E88E5"},
	{ID: "engineering", Name: "الهندسة", IconName: "CircuitBoard", Color: "#FB8C00"},
	{ID: "construction", Name: "البناء والأشغال العامة", IconName: "HardHat", Color: "#78909C"},
	{ID: "healthcare", Name: "الصحة والتمريض", IconName: "Stethoscope", Color: "#43A047"},
	{ID: "education", Name: "التعليم والتدريب", IconName: "BookOpen", Color: "#8E24AA"},
	{ID: "finance", Name: "المالية والمحاسبة", IconName: "Calculator", Color: "#00ACC1"},
	{ID: "admin", Name: "الإدارة والسكرتارية", IconName: "KanbanSquare", Color: "#5E35B1"},
	{ID: "marketing", Name: "التسويق والمبيعات", IconName: "Megaphone", Color: "#E53935"},
	{ID: "hr", Name: "الموارد البشرية", IconName: "Users", Color: "#3949AB"},
	{ID: "hospitality", Name: "الفندقة والسياحة", IconName: "ConciergeBell", Color: "#D81B60"},
	{ID: "logistics", Name: "النقل واللوجستيك", IconName: "Truck", Color: "#F4511E"},
	{ID: "security", Name: "الخدمات الأمنية", IconName: "Shield", Color: "#546E7A"},
	{ID: "crafts", Name: "الحرف والصناعات التقليدية", IconName: "PenTool", Color: "#A1887F"},
	{ID: "manufacturing", Name: "الصناعة والإنتاج", IconName: "Factory", Color: "#455A64"},
	{ID: "law", Name: "القانون والشؤون القانونية", IconName: "Gavel", Color: "#6D4C41"},
	{ID: "gov", Name: "وظائف حكومية", IconName: "Landmark", Color: "#0277BD"},
	{ID: "media", Name: "الإعلام والاتصال", IconName: "Newspaper", Color: "#00897B"},
	{ID: "retail", Name: "التجارة والتوزيع", IconName: "ShoppingCart", Color: "#37474F"},
	{ID: "agriculture", Name: "الفلاحة والزراعة", IconName: "Sprout", Color: "#388E3C"},
}

var organizers = []Organizer{
	{Name: "الوزارات والجماعات المحلية", Icon: "Landmark", Color: "#37474F"},
	{Name: "وزارة التربية الوطنية", Icon: "BookOpen", Color: "#8E24AA"},
	{Name: "الأمن والقوات المسلحة", Icon: "ShieldCheck", Color: "#1E88E5"},
	{Name: "الصحة العامة", Icon: "Stethoscope", Color: "#43A047"},
	{Name: "المعاهد العليا والمؤسسات العامة", Icon: "FileText", Color: "#00897B"},
	{Name: "خرّيجون جدد (باك/دبلوم)", Icon: "Users", Color: "#FB8C00"},
}

// Categories returns the static job category list.
func Categories() []Category {
	return categories
}

// CategoryByID resolves a category by its identifier. Returns nil for
// unknown IDs.
func CategoryByID(id string) *Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}

// Organizers returns the static competition organizer list.
func Organizers() []Organizer {
	return organizers
}

// OrganizerByName resolves an organizer by its display name. Returns nil
// for unknown names.
func OrganizerByName(name string) *Organizer {
	if name == "" {
		return nil
	}
	for i := range organizers {
		if organizers[i].Name == name {
			return &organizers[i]
		}
	}
	return nil
}
