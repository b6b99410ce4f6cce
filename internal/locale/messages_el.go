package locale

// messagesEL holds the Greek message catalog.
var messagesEL = map[string]string{
	// Product search
	"search.found":      "Βρήκα %d προϊόντα %s:",
	"search.not_found":  "Δεν βρήκα προϊόντα που να ταιριάζουν με %q. Μπορείτε να δοκιμάσετε με διαφορετικούς όρους αναζήτησης; Μπορείτε να ρωτήσετε για: %s.",
	"search.followup":   "Θα θέλατε περισσότερες πληροφορίες για κάποιο από αυτά τα προϊόντα;",
	"search.need_input": "Ποιο προϊόν θα θέλατε να αναζητήσω;",

	// Data provenance
	"source.live": "από την ιστοσελίδα μας",
	"source.db":   "από τη βάση δεδομένων μας",

	// Stock phrases
	"stock.in":  "Διαθέσιμο",
	"stock.out": "Εξαντλημένο",

	// Product details
	"detail.header":       "Πληροφορίες %s για το %s:",
	"detail.price":        "Τιμή: €%.2f",
	"detail.availability": "Διαθεσιμότητα: %s",
	"detail.description":  "Περιγραφή: %s",
	"detail.followup":     "Θα θέλατε να κλείσετε ραντεβού για περαιτέρω πληροφορίες ή αγορά;",
	"detail.not_found":    "Δεν μπόρεσα να βρω τις λεπτομέρειες για αυτό το προϊόν. Μπορείτε να δώσετε περισσότερες πληροφορίες;",
	"detail.need_input":   "Για ποιο προϊόν θα θέλατε λεπτομέρειες;",

	// Inventory
	"inventory.need_input": "Χρειάζομαι όνομα προϊόντος ή κωδικό SKU για να ελέγξω το απόθεμα. Ποιο προϊόν ψάχνετε;",
	"inventory.available":  "Ναι! %s είναι διαθέσιμο. Έχουμε %d μονάδες στη τιμή των €%.2f. Θα θέλατε να σας κρατήσω ένα;",
	"inventory.out":        "Δυστυχώς το %s δεν είναι διαθέσιμο αυτή τη στιγμή. Θα θέλατε να δείτε παρόμοια προϊόντα;",
	"inventory.not_found":  "Δε μπόρεσα να βρω το %q στο απόθεμά μας. Θα θέλατε να δείτε τα παρόμοια προϊόντα που έχουμε;",
	"inventory.multiple":   "Βρήκα %d προϊόντα που ταιριάζουν με %q. Ποιο σας ενδιαφέρει;",

	// Pricing
	"price.need_input": "Χρειάζομαι όνομα προϊόντος ή κωδικό SKU για να ελέγξω την τιμή. Ποιο προϊόν σας ενδιαφέρει;",
	"price.not_found":  "Δε μπόρεσα να βρω το %q στον κατάλογό μας. Μπορείτε να δώσετε περισσότερες λεπτομέρειες;",
	"price.quote":      "%s κοστίζει €%.2f το τεμάχιο%s. Για %d τεμάχια, το συνολικό κόστος είναι €%.2f. Έχουμε %d σε απόθεμα.",
	"price.discount5":  " (5% έκπτωση για 5+ τεμάχια)",
	"price.discount10": " (10% έκπτωση για 10+ τεμάχια)",
	"price.multiple":   "Βρήκα πολλαπλά προϊόντα. Ποιο σας ενδιαφέρει;",

	// Store information
	"store.hours":    "Είμαστε ανοιχτά Δευτέρα με Παρασκευή 9:00 με 19:00 και Σάββατο 9:00 με 15:00. Κυριακή είμαστε κλειστά.",
	"store.location": "Θα μας βρείτε στη Λεωφόρο Μακαρίου 171 στη Λευκωσία.",
	"store.contact":  "Μπορείτε να μας καλέσετε στο 77-111-104 ή να επισκεφθείτε την ιστοσελίδα μας.",
	"store.services": "Προσφέρουμε επισκευές υπολογιστών, συναρμολόγηση PC, συμβουλευτική και εξυπηρέτηση εγγυήσεων.",
	"store.general":  "Είμαστε κατάστημα υπολογιστών στη Λευκωσία, ανοιχτά Δευτέρα με Σάββατο. Ρωτήστε με για ωράριο, τοποθεσία, επικοινωνία ή υπηρεσίες.",
}
