package scoring

const defaultTemplateKey = "Default"

var industryTemplates = map[string]string{
	"SaaS":       "Hi {name}, I noticed {company} is innovating in the SaaS space. We've helped similar companies increase their customer acquisition by 40% through AI-powered lead generation...",
	"Technology": "Hi {name}, As a leader in {company}'s technology initiatives, you're probably focused on scaling efficiently. We've helped tech companies like yours automate their sales pipeline...",
	"Analytics":  "Hi {name}, Data-driven companies like {company} often struggle with lead quality. Our AI platform has helped analytics firms improve lead scoring accuracy by 60%...",
	"E-commerce": "Hi {name}, E-commerce businesses like {company} need to move fast. Our AI sales platform has helped online retailers increase conversion rates while reducing acquisition costs...",
	"Default":    "Hi {name}, I've been following {company}'s growth and believe our AI sales platform could help you scale your customer acquisition efforts...",
}

var industryTones = map[string]string{
	"SaaS":       "Technical and data-driven",
	"Technology": "Innovative and forward-thinking",
	"Analytics":  "Analytical and metric-focused",
	"E-commerce": "Fast-paced and results-oriented",
	"Default":    "Professional and value-focused",
}

var valuePropositions = []string{
	"Increase sales efficiency by 40% with AI-powered lead generation",
	"Reduce manual prospecting time while improving lead quality",
	"Scale your outreach with personalized multi-channel campaigns",
	"Get real-time insights into your ideal customer profile",
	"Automate follow-ups and nurture sequences for better conversion",
}

var painPoints = []string{
	"Spending too much time on manual lead research",
	"Low response rates from cold outreach campaigns",
	"Difficulty identifying high-quality prospects",
	"Lack of personalization in sales messaging",
	"Poor lead scoring and qualification processes",
}

var commonObjections = []string{
	"We already have a sales process that works",
	"AI tools are too expensive for our budget",
	"Our team isn't technical enough to use AI",
	"We prefer building relationships manually",
	"Concerned about data privacy and security",
}

var successStories = []string{
	"TechCorp increased qualified leads by 60% in 3 months",
	"SaaS startup scaled from 10 to 100 leads per week",
	"Enterprise client improved conversion rates by 35%",
	"Marketing agency reduced lead research time by 70%",
	"Sales team hit 120% of quota using AI insights",
}

// TemplateFor returns the outreach opener and tone for an industry
func TemplateFor(industry string) IndustryTemplate {
	template, ok := industryTemplates[industry]
	if !ok {
		template = industryTemplates[defaultTemplateKey]
	}
	tone, ok := industryTones[industry]
	if !ok {
		tone = industryTones[defaultTemplateKey]
	}
	return IndustryTemplate{Industry: industry, Template: template, Tone: tone}
}

func buildMessaging(a LeadAnalysis) Messaging {
	templates := []IndustryTemplate{}
	for _, industry := range topKeys(a.Industries, 3) {
		templates = append(templates, TemplateFor(industry))
	}
	return Messaging{
		IndustryTemplates: templates,
		ValuePropositions: append([]string(nil), valuePropositions...),
		PainPoints:        append([]string(nil), painPoints...),
		CommonObjections:  append([]string(nil), commonObjections...),
		SuccessStories:    append([]string(nil), successStories...),
	}
}
