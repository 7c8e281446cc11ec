package mockdata

import "orbital/internal/core"

var (
	incomeMerchants = []string{
		"Acme Corp",
		"Tech Solutions",
		"Freelance Client",
		"Investment Returns",
	}

	expenseMerchants = []string{
		"Uber",
		"Spotify",
		"Netflix",
		"Amazon",
		"Whole Foods",
		"Apple",
		"Starbucks",
		"Target",
		"CVS Pharmacy",
		"Delta Airlines",
		"Electric Company",
		"Gas & Power",
	}

	descriptions = map[core.Category][]string{
		core.Salary:        {"Monthly Salary", "Bonus Payment", "Performance Bonus"},
		core.Freelance:     {"Web Development Project", "Consulting Fee", "Design Work"},
		core.Investments:   {"Dividend Payment", "Stock Sale", "Interest Income"},
		core.Food:          {"Grocery Shopping", "Restaurant Dinner", "Coffee & Snacks", "Lunch"},
		core.Transport:     {"Uber Ride", "Gas Station", "Monthly Subway Pass", "Car Maintenance"},
		core.Entertainment: {"Movie Tickets", "Concert", "Gaming Subscription", "Streaming Service"},
		core.Shopping:      {"Electronics Purchase", "Clothing", "Home Decor", "Books"},
		core.Utilities:     {"Electric Bill", "Water Bill", "Internet Service", "Phone Bill"},
		core.Healthcare:    {"Doctor Visit", "Pharmacy", "Gym Membership", "Health Insurance"},
		core.Education:     {"Online Course", "Books & Materials", "Workshop Registration"},
		core.Travel:        {"Flight Booking", "Hotel Stay", "Car Rental", "Travel Insurance"},
		core.Subscription:  {"Software Subscription", "Music Streaming", "Cloud Storage"},
		core.Other:         {"Miscellaneous", "Gift", "Donation", "ATM Withdrawal"},
	}
)
