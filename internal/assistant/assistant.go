// Package assistant implements the scripted equipment advisor shown as
// a chat widget in the web UI. It is not an inference engine: replies
// are canned strings picked by keyword, and the recommendation list is
// fixed. Keeping it server-side lets every client share one script.
package assistant

import "strings"

// Greeting opens every assistant conversation.
const Greeting = "Hello! I'm your farming assistant. I can help you find the right equipment for your needs. What are you looking for today?"

// Recommendations is the fixed advice list surfaced next to the chat.
var Recommendations = []string{
	"Based on your farm size, a Mini Tractor would be more efficient than a full-sized one.",
	"Consider the Seed Drill for precision sowing, which reduces seed waste by 30%.",
	"The Water Pump Set would address your irrigation needs during dry periods.",
	"A combination of Harrow Disc and Rotavator would prepare your soil optimally for wheat cultivation.",
}

// fallbackReply is used when no keyword matches the prompt.
const fallbackReply = "Based on your need, I recommend checking out the 'Mini Tractor' or 'Seed Drill' listings. They match well with your requirements."

// scripted pairs a keyword with its canned reply. First match wins.
var scripted = []struct {
	keyword string
	reply   string
}{
	{"tractor", "For most small and mid-sized farms a Mini Tractor offers the best balance of power and running cost. Check the current Mini Tractor listings."},
	{"irrigat", "A Water Pump Set is the usual answer for irrigation gaps. Look for one rated for your field size."},
	{"pump", "A Water Pump Set is the usual answer for irrigation gaps. Look for one rated for your field size."},
	{"soil", "Pairing a Harrow Disc with a Rotavator covers both primary and secondary tillage. Both show up regularly in the barter listings."},
	{"till", "Pairing a Harrow Disc with a Rotavator covers both primary and secondary tillage. Both show up regularly in the barter listings."},
	{"seed", "A Seed Drill places seed at uniform depth and spacing, cutting seed waste by up to 30% versus broadcasting."},
	{"sow", "A Seed Drill places seed at uniform depth and spacing, cutting seed waste by up to 30% versus broadcasting."},
	{"spray", "A mounted Pesticide Sprayer with a 500L tank handles large fields in a single pass."},
}

// Reply returns the scripted response for a prompt.
func Reply(prompt string) string {
	p := strings.ToLower(prompt)
	for _, s := range scripted {
		if strings.Contains(p, s.keyword) {
			return s.reply
		}
	}
	return fallbackReply
}
