package entities

// wellKnownCompanies are recognized as organizations without a legal suffix
var wellKnownCompanies = []string{
	"Apple", "Google", "Microsoft", "Amazon", "Facebook", "Meta", "Tesla", "Netflix",
	"Spotify", "Adobe", "Intel", "AMD", "NVIDIA", "Samsung", "Sony", "IBM", "Oracle",
	"Salesforce", "Zoom", "Slack", "Twitter", "LinkedIn", "YouTube", "Instagram",
	"TikTok", "WhatsApp", "Uber", "Airbnb", "PayPal", "Shopify", "WordPress", "GitHub",
	"Stack Overflow", "Reddit", "Discord", "Twitch",
}

var majorCities = []string{
	"New York", "Los Angeles", "Chicago", "Houston", "Phoenix", "Philadelphia",
	"San Antonio", "San Diego", "Dallas", "San Jose", "Austin", "Jacksonville",
	"San Francisco", "Columbus", "Charlotte", "Fort Worth", "Detroit", "El Paso",
	"Memphis", "Seattle", "Denver", "Washington", "Boston", "Nashville", "Baltimore",
	"Oklahoma City", "Louisville", "Portland", "Las Vegas", "Milwaukee", "Albuquerque",
	"Tucson", "Fresno", "Sacramento", "Kansas City", "Long Beach", "Mesa", "Atlanta",
	"Colorado Springs", "Virginia Beach", "Raleigh", "Omaha", "Miami", "Oakland",
	"Minneapolis", "Tulsa", "Wichita", "New Orleans", "Arlington", "London", "Paris",
	"Berlin", "Tokyo", "Sydney", "Toronto", "Vancouver", "Montreal", "Mumbai", "Delhi",
	"Shanghai", "Beijing", "Moscow", "Dubai", "Singapore", "Hong Kong",
}

var technologyTerms = []string{
	"iPhone", "iPad", "MacBook", "Android", "Windows", "Linux", "iOS", "JavaScript",
	"Python", "Java", "React", "Angular", "Vue", "Node.js", "Docker", "Kubernetes",
	"AWS", "Azure", "GCP", "MongoDB", "PostgreSQL", "MySQL", "Redis", "GraphQL",
	"REST API", "Machine Learning", "AI", "Artificial Intelligence", "Cloud Computing",
	"Blockchain", "Cryptocurrency", "Bitcoin", "Ethereum",
}
