package search

// staticPages is the hand-maintained index of marketing and information pages.
// It is read-only after package initialisation.
var staticPages = []Item{
	{Type: TypePage, Title: "Home", URL: "/", Category: "Stillhouse",
		Description: "Small-batch rum and spirits distilled on the coast.",
		Keywords:    "home stillhouse distillery rum spirits"},
	{Type: TypePage, Title: "Shop", URL: "/shop", Category: "Shop",
		Description: "Buy our rums, gift sets and bar tools online.",
		Keywords:    "buy store bottles gift sets merchandise order online"},
	{Type: TypePage, Title: "Gift Cards", URL: "/shop/gift-cards", Category: "Shop",
		Description: "Digital gift cards for any amount, delivered by email.",
		Keywords:    "gift voucher present birthday christmas"},
	{Type: TypePage, Title: "Our Story", URL: "/about", Category: "About",
		Description: "How a boat shed became a distillery.",
		Keywords:    "about history founders team heritage"},
	{Type: TypePage, Title: "The Distillery", URL: "/about/distillery", Category: "About",
		Description: "Our copper pot still, fermentation room and barrel store.",
		Keywords:    "still copper pot fermentation molasses barrels production process"},
	{Type: TypePage, Title: "Sustainability", URL: "/about/sustainability", Category: "About",
		Description: "Renewable energy, recycled glass and local sourcing.",
		Keywords:    "environment green carbon packaging recycling b corp"},
	{Type: TypePage, Title: "Distillery Tours", URL: "/visit/tours", Category: "Visit",
		Description: "Guided tours and tastings at the distillery.",
		Keywords:    "visit tour tasting experience booking tickets"},
	{Type: TypePage, Title: "Events", URL: "/visit/events", Category: "Visit",
		Description: "Masterclasses, pop-ups and festival appearances.",
		Keywords:    "masterclass festival pop up calendar what's on"},
	{Type: TypePage, Title: "Stockists", URL: "/stockists", Category: "Visit",
		Description: "Find bars, restaurants and shops that pour our spirits.",
		Keywords:    "where to buy retailers bars shops near me map"},
	{Type: TypePage, Title: "Field Manual", URL: "/field-manual", Category: "Field Manual",
		Description: "Recipes, equipment and ingredient notes for the home bar.",
		Keywords:    "home bar handbook reference learn mixology"},
	{Type: TypePage, Title: "Cocktail Recipes", URL: "/field-manual/cocktails", Category: "Field Manual",
		Description: "Classic and signature cocktails built around our rums.",
		Keywords:    "cocktails drinks recipes mixing daiquiri mojito punch"},
	{Type: TypePage, Title: "Rum Daiquiri", URL: "/field-manual/cocktails/daiquiri", Category: "Field Manual",
		Description: "Rum, lime and sugar, shaken hard.",
		Keywords:    "classic sour lime shaken"},
	{Type: TypePage, Title: "Bar Equipment", URL: "/field-manual/equipment", Category: "Field Manual",
		Description: "The shakers, jiggers and glassware worth owning.",
		Keywords:    "tools shaker jigger strainer glassware barware"},
	{Type: TypePage, Title: "Ingredients", URL: "/field-manual/ingredients", Category: "Field Manual",
		Description: "Syrups, bitters, citrus and the rest of the pantry.",
		Keywords:    "syrup bitters citrus garnish pantry"},
	{Type: TypePage, Title: "Guides", URL: "/guides", Category: "Guides",
		Description: "Long reads on rum styles, production and tasting.",
		Keywords:    "articles journal blog reading learn"},
	{Type: TypePage, Title: "Rum Guides", URL: "/guides?category=rum-guides", Category: "Guides",
		Description: "Everything from pot still funk to cask finishes.",
		Keywords:    "rum styles ageing cask pot still column still"},
	{Type: TypePage, Title: "How to Taste Spirits", URL: "/guides/how-to-taste", Category: "Guides",
		Description: "Nosing, tasting and writing useful notes.",
		Keywords:    "tasting notes nose palate finish guide"},
	{Type: TypePage, Title: "Trade", URL: "/trade", Category: "Trade",
		Description: "Wholesale pricing and support for bars and retailers.",
		Keywords:    "wholesale trade account distributor on trade off trade"},
	{Type: TypePage, Title: "Press", URL: "/press", Category: "About",
		Description: "Press kit, brand assets and media enquiries.",
		Keywords:    "media journalists press kit logos images"},
	{Type: TypePage, Title: "Awards", URL: "/about/awards", Category: "About",
		Description: "Medals and recognition for our spirits.",
		Keywords:    "medals competition gold silver iwsc"},
	{Type: TypePage, Title: "Careers", URL: "/careers", Category: "About",
		Description: "Join the team at the distillery.",
		Keywords:    "jobs vacancies work hiring"},
	{Type: TypePage, Title: "Newsletter", URL: "/newsletter", Category: "Contact",
		Description: "Releases, recipes and events in your inbox.",
		Keywords:    "email signup subscribe mailing list updates"},
	{Type: TypePage, Title: "Contact Us", URL: "/contact", Category: "Contact",
		Description: "Questions about orders, visits or the spirits themselves.",
		Keywords:    "email phone address help enquiry get in touch"},
	{Type: TypePage, Title: "FAQ", URL: "/faq", Category: "Help",
		Description: "Answers to common questions about orders and visits.",
		Keywords:    "frequently asked questions help support"},
	{Type: TypePage, Title: "Delivery Information", URL: "/help/delivery", Category: "Help",
		Description: "Shipping times, costs and couriers.",
		Keywords:    "shipping postage courier tracking delivery times"},
	{Type: TypePage, Title: "Returns & Refunds", URL: "/help/returns", Category: "Help",
		Description: "How to return a damaged or incorrect order.",
		Keywords:    "refund return broken damaged exchange"},
	{Type: TypePage, Title: "Drink Responsibly", URL: "/responsibility", Category: "Help",
		Description: "Our commitment to responsible drinking.",
		Keywords:    "alcohol awareness drinkaware age verification"},
	{Type: TypePage, Title: "Privacy Policy", URL: "/legal/privacy", Category: "Legal",
		Description: "How we collect and use personal data.",
		Keywords:    "gdpr data protection personal information"},
	{Type: TypePage, Title: "Cookie Policy", URL: "/legal/cookies", Category: "Legal",
		Description: "Which cookies we set and how to change your preferences.",
		Keywords:    "cookies consent tracking analytics preferences"},
	{Type: TypePage, Title: "Terms & Conditions", URL: "/legal/terms", Category: "Legal",
		Description: "Terms of sale and website use.",
		Keywords:    "terms of service conditions of sale legal"},
}

// StaticPages returns a copy of the static page index.
func StaticPages() []Item {
	out := make([]Item, len(staticPages))
	copy(out, staticPages)
	return out
}
