package service

import "strings"

// Query categories for the flight-details agent
const (
	QueryMeal          = "meal"
	QueryWifi          = "wifi"
	QuerySeating       = "seating"
	QueryEntertainment = "entertainment"
	QueryPower         = "power"
	QueryComparison    = "comparison"
	QueryGeneral       = "general"
)

// classification is keyword-based and ordered: the first category with a hit
// wins, so meal keywords shadow wifi keywords and so on.
var queryCategories = []struct {
	category string
	keywords []string
}{
	// "eat" is deliberately absent: substring matching would hit "seat".
	{QueryMeal, []string{"meal", "food", "vegetarian", "vegan", "kosher", "halal", "diet", "dining"}},
	{QueryWifi, []string{"wifi", "wi-fi", "internet", "connect", "online"}},
	{QuerySeating, []string{"seat", "seating", "configuration", "exit row", "legroom", "window", "aisle"}},
	{QueryEntertainment, []string{"entertainment", "movie", "tv", "screen", "streaming", "games"}},
	{QueryPower, []string{"usb", "charging", "power", "outlet", "plug", "charge", "battery"}},
	{QueryComparison, []string{"compare", "better", "difference", "vs", "versus", "which"}},
}

// queryTemplates are the canned specialist instructions selected per
// category. {question} is replaced with the customer's question.
var queryTemplates = map[string]string{
	QueryMeal: `You are a helpful United Airlines customer service agent specializing in meal and dining services.
Always mention if the requested meal type is available, how to request special meals (24-48 hours advance notice), what the route type's service includes, and any restrictions.

Customer question: {question}`,

	QueryWifi: `You are a helpful United Airlines customer service agent specializing in connectivity and WiFi services.
Clearly state WiFi availability on the specific flight, exact pricing if known, coverage limitations, and alternatives when WiFi is absent.

Customer question: {question}`,

	QuerySeating: `You are a helpful United Airlines customer service agent specializing in seating and aircraft configurations.
Describe the seat configuration, total seats and aircraft type, exit row availability, and suggest good seat options for different passenger needs.

Customer question: {question}`,

	QueryEntertainment: `You are a helpful United Airlines customer service agent specializing in in-flight entertainment.
Describe the entertainment system, content types, how to access it, and any device requirements.

Customer question: {question}`,

	QueryPower: `You are a helpful United Airlines customer service agent specializing in power and charging options.
State USB charging availability at seats, power outlet types if available, and any device usage restrictions.

Customer question: {question}`,

	QueryComparison: `You are a helpful United Airlines customer service agent specializing in flight comparisons.
Create a clear side-by-side comparison of the requested features and give a specific recommendation.

Customer question: {question}`,

	QueryGeneral: `You are a helpful United Airlines customer service agent providing comprehensive flight information.
Answer using the provided flight details, anticipate follow-up questions, and keep a friendly, professional tone.

Customer question: {question}`,
}

// ClassifyQuery maps a customer question to a response template category
func ClassifyQuery(query string) string {
	q := strings.ToLower(query)
	for _, c := range queryCategories {
		for _, kw := range c.keywords {
			if strings.Contains(q, kw) {
				return c.category
			}
		}
	}
	return QueryGeneral
}

// TemplateFor returns the prompt template for a category, with the question
// substituted in.
func TemplateFor(category, question string) string {
	tpl, ok := queryTemplates[category]
	if !ok {
		tpl = queryTemplates[QueryGeneral]
	}
	return strings.ReplaceAll(tpl, "{question}", question)
}
