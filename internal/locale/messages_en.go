package locale

// messagesEN holds the English message catalog.
var messagesEN = map[string]string{
	// Product search
	"search.found":      "I found %d products %s:",
	"search.not_found":  "I couldn't find any products matching %q. Could you try different search terms? You could ask about: %s.",
	"search.followup":   "Would you like more information about any of these products?",
	"search.need_input": "What product would you like me to search for?",

	// Data provenance, spoken so transcripts record which tier answered
	"source.live": "from our live website",
	"source.db":   "from our database",

	// Stock phrases
	"stock.in":  "In Stock",
	"stock.out": "Out of Stock",

	// Product details
	"detail.header":       "Product information %s for %s:",
	"detail.price":        "Price: €%.2f",
	"detail.availability": "Availability: %s",
	"detail.description":  "Description: %s",
	"detail.followup":     "Would you like to book an appointment for more information or to make a purchase?",
	"detail.not_found":    "I couldn't find the details for that product. Could you provide more information?",
	"detail.need_input":   "Which product would you like details about?",

	// Inventory
	"inventory.need_input": "I need a product name or SKU to check inventory. What product are you looking for?",
	"inventory.available":  "Yes! %s is in stock. We have %d units available at €%.2f. Would you like me to reserve one for you?",
	"inventory.out":        "Unfortunately %s is currently out of stock. Would you like me to check similar products?",
	"inventory.not_found":  "I couldn't find %q in our inventory. Would you like me to check similar products we have in stock?",
	"inventory.multiple":   "I found %d products matching %q. Which one interests you?",

	// Pricing
	"price.need_input": "I need a product name or SKU to check pricing. What product are you interested in?",
	"price.not_found":  "I couldn't find %q in our catalog. Can you provide more details?",
	"price.quote":      "%s costs €%.2f each%s. For %d units, the total would be €%.2f. We have %d in stock.",
	"price.discount5":  " (5% discount for 5+ items)",
	"price.discount10": " (10% discount for 10+ items)",
	"price.multiple":   "I found multiple products. Which one interests you?",

	// Store information
	"store.hours":    "We are open Monday to Friday 9:00 to 19:00 and Saturday 9:00 to 15:00. We are closed on Sundays.",
	"store.location": "You can find us at 171 Makarios Avenue in Nicosia.",
	"store.contact":  "You can reach us by phone at 77-111-104 or visit our website.",
	"store.services": "We offer computer repairs, custom PC builds, consultations and warranty service.",
	"store.general":  "We are a computer hardware store in Nicosia, open Monday to Saturday. Ask me about our hours, location, contact details or services.",
}
