package vocab

var controlTokens = []string{"<PAD>", "<UNK>", "<BOS>", "<EOS>", "<MASK>"}

var commonWords = []string{
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by",
	"i", "you", "he", "she", "it", "we", "they", "me", "him", "her", "us", "them",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had", "do", "does", "did",
	"will", "would", "could", "should", "may", "might", "can", "must",
	"what", "where", "when", "why", "how", "who", "which", "that", "this", "these", "those",
	"yes", "no", "not", "never", "always", "sometimes", "often", "usually", "here", "there",
	"good", "bad", "big", "small", "new", "old", "first", "last", "long", "short", "high", "low",
	"water", "food", "help", "emergency", "safety", "medical", "shelter", "communication",
	"hello", "hi", "thank", "please", "sorry", "welcome", "goodbye",
}
