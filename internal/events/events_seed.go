package events

// Stock templates inserted on first boot, matching what the club staff
// expect to pick from. Seeding only runs against an empty table so
// operator edits survive restarts.
func defaultTemplates() []EventTemplate {
	return []EventTemplate{
		{
			Name:        "Standard Tournament",
			EventType:   "tournament",
			Description: "A standard golf tournament with stroke play format.",
			DefaultRules: `Tournament Rules:
1. USGA Rules of Golf apply
2. Stroke play format (18 holes)
3. Maximum handicap: 36 for men, 40 for women
4. Tee time start - players must report 30 minutes before
5. Pace of play: Maximum 4 hours 30 minutes
6. All players must have valid handicap index
7. Local rules as posted on course
8. Decision of tournament committee is final`,
			DefaultPrizes: `Prizes:
🥇 1st Place: Trophy + Voucher IDR 5,000,000
🥈 2nd Place: Trophy + Voucher IDR 3,000,000
🥉 3rd Place: Trophy + Voucher IDR 2,000,000
🎯 Nearest to Pin: Golf Equipment
🏌️ Longest Drive: Golf Equipment
⭐ Best Net Score: Special Prize`,
			IsDefault: true,
		},
		{
			Name:        "Monthly Medal",
			EventType:   "medal",
			Description: "Monthly medal competition for club members.",
			DefaultRules: `Medal Competition Rules:
1. USGA Rules of Golf apply
2. Stroke play - Net score competition
3. Players compete in their respective flights
4. All scores must be attested
5. Maximum score per hole: Net double bogey
6. Players must complete all 18 holes
7. Scorecards must be submitted within 30 minutes`,
			DefaultPrizes: `Prizes:
🏆 Overall Winner: Monthly Medal + Pro Shop Voucher
Flight A Winner: Certificate + Golf Balls
Flight B Winner: Certificate + Golf Balls
Flight C Winner: Certificate + Golf Balls`,
		},
		{
			Name:        "Corporate Outing",
			EventType:   "corporate",
			Description: "Corporate golf outing with team format.",
			DefaultRules: `Corporate Event Rules:
1. Best Ball/Scramble format
2. Teams of 4 players
3. Each player must contribute minimum 3 drives
4. Maximum handicap: 24
5. Shotgun start
6. Pace of play strictly enforced
7. Dress code: Smart casual golf attire
8. Caddies provided`,
			DefaultPrizes: `Prizes:
🏆 Best Team Score: Trophy + Company Vouchers
🎯 Nearest to Pin (All Par 3s): Individual Prizes
🏌️ Longest Drive: Individual Prize
🍀 Lucky Draw: Various Prizes
🎁 Door Prizes for All Participants`,
		},
		{
			Name:        "Charity Golf",
			EventType:   "charity",
			Description: "Charity golf event to raise funds for good causes.",
			DefaultRules: `Charity Event Rules:
1. Four-ball better ball format
2. All skill levels welcome
3. Mulligans available for purchase (max 2)
4. String game available
5. Participation is more important than winning
6. All proceeds go to charity
7. Auction and raffle after golf
8. Dinner included in entry fee`,
			DefaultPrizes: `Recognition:
🏆 Winning Team: Charity Champion Trophy
⭐ Top Fundraiser: Special Recognition
🎯 Skill Prizes: Various Categories
🎁 Raffle & Auction Items
📜 Certificate of Participation for All`,
		},
		{
			Name:        "Junior Golf Clinic",
			EventType:   "clinic",
			Description: "Golf clinic and training for junior players.",
			DefaultRules: `Clinic Guidelines:
1. Age groups: 8-12, 13-17
2. All equipment provided
3. Professional instruction included
4. Focus on fundamentals and etiquette
5. Safety briefing mandatory
6. Parents welcome to observe
7. Certificate of completion provided
8. Light refreshments included`,
			DefaultPrizes: `Awards:
⭐ Most Improved Player
🎯 Best Short Game
🏌️ Best Swing
🤝 Best Sportsmanship
📜 Completion Certificate for All
🎁 Participation Gifts`,
		},
	}
}
