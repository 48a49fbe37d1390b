package fallback

// The rule order encodes a safety priority: emergency queries are answered
// before survival topics, which are answered before conversation.
var defaultRules = []Rule{
	{
		Name: "emergency",
		Any:  []string{"emergency", "danger", "help"},
		Response: "I understand this may be an emergency situation. For immediate safety:\n\n" +
			"1. Move to the safest available location\n" +
			"2. Stay low if there's debris or smoke\n" +
			"3. Check for injuries and provide basic first aid\n" +
			"4. Signal for help if possible\n" +
			"5. Conserve water, food, and battery power\n\n" +
			"What specific emergency assistance do you need?",
	},
	{
		Name: "water",
		Any:  []string{"water"},
		All:  [][]string{{"clean", "purify"}},
		Response: "Water purification methods using available materials:\n\n" +
			"**Immediate options:**\n" +
			"• Boiling: Use any heat source for 1-3 minutes\n" +
			"• Solar disinfection: Clear bottles in direct sunlight for 6+ hours\n" +
			"• Sand filtration: Layer fine sand, gravel, cloth in container\n\n" +
			"**Materials needed:**\n" +
			"• Cloth or fabric for initial filtering\n" +
			"• Sand and gravel (if available)\n" +
			"• Clear containers or bottles\n" +
			"• Heat source (wood, solar cooker)\n\n" +
			"These methods remove most harmful bacteria and particles. Always use the " +
			"clearest water source available as starting point.",
	},
	{
		Name: "first-aid",
		Any:  []string{"medical", "injury", "first aid"},
		Response: "Basic first aid using available materials:\n\n" +
			"**For wounds:**\n" +
			"• Clean cloth or fabric for bandages\n" +
			"• Clean water for washing\n" +
			"• Apply direct pressure to stop bleeding\n" +
			"• Elevate injured area if possible\n\n" +
			"**For burns:**\n" +
			"• Cool running water or clean wet cloth\n" +
			"• Avoid ice or very cold water\n" +
			"• Cover with clean, dry cloth\n\n" +
			"**Important:** These are emergency measures. Seek professional medical " +
			"help when possible.",
	},
	{
		Name: "shelter",
		Any:  []string{"shelter", "protection"},
		Response: "Creating protective shelter with available materials:\n\n" +
			"**Basic structure:**\n" +
			"• Use walls, debris, or natural features\n" +
			"• Create windbreaks with fabric, tarps, or boards\n" +
			"• Insulate from ground with blankets, cardboard, or clothing\n\n" +
			"**For weather protection:**\n" +
			"• Slope roof materials to shed water\n" +
			"• Block wind from dominant direction\n" +
			"• Create small, enclosed space to retain body heat\n\n" +
			"**Safety priorities:**\n" +
			"• Avoid unstable structures\n" +
			"• Ensure ventilation\n" +
			"• Have clear exit routes",
	},
	{
		Name: "signaling",
		Any:  []string{"communication", "signal", "contact"},
		Response: "Communication methods when networks are down:\n\n" +
			"**Visual signals:**\n" +
			"• Mirrors or reflective surfaces for sunlight signals\n" +
			"• Bright cloth or clothing as markers\n" +
			"• Smoke signals (safely controlled fires)\n\n" +
			"**Audio signals:**\n" +
			"• Whistles, horns, or loud objects\n" +
			"• Rhythmic patterns (3 blasts = distress)\n" +
			"• Shouting at regular intervals\n\n" +
			"**Written messages:**\n" +
			"• Leave notes in visible locations\n" +
			"• Use improvised writing materials\n" +
			"• Include date, time, direction of travel",
	},
	{
		Name: "greeting",
		Any:  []string{"hello", "hi"},
		Response: "Hello! I'm running locally on your device. I'm designed to provide " +
			"assistance even without internet connectivity. How can I help you today?",
	},
	{
		Name: "wellbeing",
		Any:  []string{"how are you"},
		Response: "I'm functioning well and ready to assist you. As a local AI model, I " +
			"can help with information, problem-solving, and guidance even when you're " +
			"offline. What do you need help with?",
	},
	{
		Name: "identity",
		Any:  []string{"what"},
		All:  [][]string{{"ai"}},
		Response: "I'm an AI assistant running locally on your device using a lightweight " +
			"language model. I can help with explanations, problem-solving, emergency " +
			"guidance, and general questions without requiring an internet connection.",
	},
	{
		Name: "programming",
		Any:  []string{"programming", "code"},
		Response: "I can help with programming concepts and coding questions. What specific " +
			"programming language or problem are you working with? I can explain concepts, " +
			"help debug issues, or suggest approaches.",
	},
}

const defaultResponse = "I'm here to help with a wide range of topics including emergency " +
	"guidance, technical questions, explanations, and problem-solving. I work completely " +
	"offline, so you can rely on me even without internet access. What specific " +
	"information or assistance do you need?"
