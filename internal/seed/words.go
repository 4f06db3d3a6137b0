package seed

// Categories are the product categories of the demo catalogue.
var Categories = []string{
	"Electronics", "Clothing", "Books", "Home & Garden",
	"Sports", "Toys", "Food & Beverages", "Health",
}

var productNouns = []string{
	"Lamp", "Kettle", "Backpack", "Blender", "Headphones", "Jacket", "Novel", "Planter",
	"Racket", "Puzzle", "Coffee", "Vitamins", "Monitor", "Sneakers", "Cookbook", "Drone",
}

var productEditions = []string{"Pro", "Deluxe", "Basic", "Premium"}

var firstNames = []string{
	"Javier", "Amelia", "Noor", "Kenji", "Olivia", "Mateo", "Priya", "Lukas",
	"Hana", "Samuel", "Chloe", "Ibrahim", "Sofia", "Daniel", "Mei", "Tomas",
}

var lastNames = []string{
	"Lupins", "Broad", "Petroula", "Okafor", "Lindqvist", "Moreau", "Tanaka", "Reyes",
	"Kowalski", "Haddad", "Nguyen", "Schmidt", "Costa", "Walsh", "Singh", "Barros",
}

var departments = []string{"Sales", "Marketing", "Engineering", "Finance", "Operations", "Support"}

var emailDomains = []string{"example.com", "example.org", "example.net"}
