package content

// The Elder Futhark, in traditional row order.
var elderFuthark = []Rune{
	{Key: "fehu", Name: "Fehu", Symbol: "ᚠ", Meaning: "Wealth, abundance, new beginnings. Resources are flowing toward you.", Reversed: "Loss of property, greed blocking growth."},
	{Key: "uruz", Name: "Uruz", Symbol: "ᚢ", Meaning: "Strength, vitality, untamed potential. Raw power waits to be directed.", Reversed: "Weakness, missed opportunity, misdirected force."},
	{Key: "thurisaz", Name: "Thurisaz", Symbol: "ᚦ", Meaning: "The thorn, a protective force. Conflict can be a catalyst.", Reversed: "Danger ignored, defensiveness turned inward."},
	{Key: "ansuz", Name: "Ansuz", Symbol: "ᚨ", Meaning: "Divine breath, communication, insight. A message is arriving.", Reversed: "Miscommunication, advice twisted or unheard."},
	{Key: "raidho", Name: "Raidho", Symbol: "ᚱ", Meaning: "The journey, rhythm, right movement. Trust the road you are on.", Reversed: "Disruption, a journey delayed or forced."},
	{Key: "kenaz", Name: "Kenaz", Symbol: "ᚲ", Meaning: "The torch, creative fire, revelation. Knowledge illuminates the way.", Reversed: "A light withdrawn, ending of a creative phase."},
	{Key: "gebo", Name: "Gebo", Symbol: "ᚷ", Meaning: "The gift, exchange, partnership. Balance in giving and receiving."},
	{Key: "wunjo", Name: "Wunjo", Symbol: "ᚹ", Meaning: "Joy, harmony, fellowship. Comfort arrives after struggle.", Reversed: "Sorrow, alienation, joy postponed."},
	{Key: "hagalaz", Name: "Hagalaz", Symbol: "ᚺ", Meaning: "Hail, disruption by nature's hand. The storm clears the ground."},
	{Key: "nauthiz", Name: "Nauthiz", Symbol: "ᚾ", Meaning: "Need, constraint, the friction that teaches. Endure and learn.", Reversed: "Deprivation, want turned to desperation."},
	{Key: "isa", Name: "Isa", Symbol: "ᛁ", Meaning: "Ice, stillness, a pause imposed. Wait for the thaw."},
	{Key: "jera", Name: "Jera", Symbol: "ᛃ", Meaning: "Harvest, the year's cycle, earned reward. What was sown returns."},
	{Key: "eihwaz", Name: "Eihwaz", Symbol: "ᛇ", Meaning: "The yew, endurance, the axis between worlds. Stand firm."},
	{Key: "perthro", Name: "Perthro", Symbol: "ᛈ", Meaning: "The lot cup, mystery, fate in motion. Hidden things surface.", Reversed: "Secrets kept against you, stagnant fate."},
	{Key: "algiz", Name: "Algiz", Symbol: "ᛉ", Meaning: "The elk, protection, a guardian presence. Shield raised.", Reversed: "Vulnerability, warnings ignored."},
	{Key: "sowilo", Name: "Sowilo", Symbol: "ᛊ", Meaning: "The sun, victory, wholeness. Success after the long night."},
	{Key: "tiwaz", Name: "Tiwaz", Symbol: "ᛏ", Meaning: "The warrior's rune, justice, sacrifice for order. Act with honor.", Reversed: "Injustice, energy drained in a losing fight."},
	{Key: "berkano", Name: "Berkano", Symbol: "ᛒ", Meaning: "The birch, birth, renewal, nurture. Something new takes root.", Reversed: "Stalled growth, family friction."},
	{Key: "ehwaz", Name: "Ehwaz", Symbol: "ᛖ", Meaning: "The horse, trust, partnership in motion. Progress through loyalty.", Reversed: "Restlessness, a partnership strained."},
	{Key: "mannaz", Name: "Mannaz", Symbol: "ᛗ", Meaning: "Humankind, the self among others. Know your place in the weave.", Reversed: "Isolation, self-deception."},
	{Key: "laguz", Name: "Laguz", Symbol: "ᛚ", Meaning: "Water, intuition, the unconscious tide. Flow rather than force.", Reversed: "Fear of the depths, intuition ignored."},
	{Key: "ingwaz", Name: "Ingwaz", Symbol: "ᛜ", Meaning: "The seed, gestation, potential stored. Rest before the release."},
	{Key: "dagaz", Name: "Dagaz", Symbol: "ᛞ", Meaning: "Daybreak, breakthrough, transformation. The turning point is now."},
	{Key: "othala", Name: "Othala", Symbol: "ᛟ", Meaning: "Inheritance, ancestral ground, home. Build on what was given.", Reversed: "Clinging to the past, disputes over what is owed."},
}

// Life-path readings: 1 through 9 plus the master numbers.
var lifePathReadings = []Reading{
	{Number: 1, Title: "The Pioneer", Text: "You walk first so others can follow. Independence is your engine; loneliness is its shadow. Lead without needing the crowd's approval."},
	{Number: 2, Title: "The Diplomat", Text: "You sense the current beneath every conversation. Partnership and patience are your instruments. Guard against dissolving into others' needs."},
	{Number: 3, Title: "The Voice", Text: "Expression is your birthright. When you create, the room brightens. Scattered energy is your only real adversary."},
	{Number: 4, Title: "The Builder", Text: "You trust what can be measured and made. Foundations laid by your hands outlast fashions. Let some walls have windows."},
	{Number: 5, Title: "The Wanderer", Text: "Freedom is not a luxury for you, it is oxygen. Change teaches you what routine never could. Learn to land as well as you leap."},
	{Number: 6, Title: "The Guardian", Text: "You are the hearth others gather around. Responsibility comes naturally, resentment only when you forget to tend your own fire."},
	{Number: 7, Title: "The Seeker", Text: "You need the question more than the answer. Solitude sharpens you. Share what you find, or wisdom curdles into distance."},
	{Number: 8, Title: "The Sovereign", Text: "Power and material mastery are your curriculum. Ambition serves you when it serves something larger than you."},
	{Number: 9, Title: "The Humanitarian", Text: "Your circle is wider than your own life. Endings are your specialty; you release what others cling to. Compassion without martyrdom."},
	{Number: 11, Title: "The Illuminator", Text: "A master number: intuition at high voltage. You perceive what is arriving before it lands. Ground the signal or it will shake you."},
	{Number: 22, Title: "The Master Builder", Text: "A master number: the visionary who also pours the concrete. Your dreams are blueprints. Scale demands patience most cannot imagine."},
	{Number: 33, Title: "The Master Teacher", Text: "A master number: love expressed as service. You raise others by presence alone. The cost is high; keep something for yourself."},
}

// Wheel prize table. Weights are relative; heavier entries land more often.
var wheelPrizes = []Prize{
	{Key: "orbs_1", Label: "1 Orb", Orbs: 1, Weight: 30},
	{Key: "orbs_2", Label: "2 Orbs", Orbs: 2, Weight: 20},
	{Key: "orbs_3", Label: "3 Orbs", Orbs: 3, Weight: 10},
	{Key: "xp_5", Label: "5 XP", XP: 5, Weight: 20},
	{Key: "xp_15", Label: "15 XP", XP: 15, Weight: 12},
	{Key: "xp_50", Label: "50 XP", XP: 50, Weight: 5},
	{Key: "jackpot", Label: "Jackpot: 5 Orbs + 25 XP", Orbs: 5, XP: 25, Weight: 3},
}
