package corpus

// SplitText cuts text into chunks of at most size runes. Consecutive
// chunks share overlap runes, so the window advances size-overlap runes
// per chunk. overlap must be smaller than size.
func SplitText(text string, size int, overlap int) []string {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil
	}
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= size {
		return []string{string(runes)}
	}

	step := size - overlap
	chunks := make([]string, 0, (len(runes)+step-1)/step)
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return chunks
}
