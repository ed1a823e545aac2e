package scheduler

import (
	"math/rand"
	"strings"
)

// Selector picks an index in [0, n). The default is uniform; tests
// inject a deterministic one.
type Selector func(n int) int

func UniformSelector(n int) int {
	return rand.Intn(n)
}

const usersPlaceholder = "{users}"

// Channel announcements; {users} is replaced with the mentions of
// everyone celebrating today, joined by ", ".
var channelTemplates = []string{
	"❄️ Today the winds of the Freljord whisper the name of {users}. Witnessing despair, we still celebrate the courage to exist. — *Aurora, the witch between worlds*",
	"🌌 Under the light that crosses the realms, {users} is remembered. May every step reclaim what was lost, like the wild friend searching for his identity. — *Aurora, the witch between worlds*",
	"💫 Between mortals and spirits, {users} begins a new cycle. May the search for your own soul carry you beyond the veil. — *Aurora, the witch between worlds*",
	"🕯️ In the coldest corners of the Freljord, even the frost celebrates {users}. May hope warm what fate tried to freeze. — *Aurora, the witch between worlds*",
	"🌬️ Today, {users} is called between worlds. May the journey to rescue who you are shine like the aurora. — *Aurora, the witch between worlds*",
}

// Private greetings for each celebrating member.
var dmTemplates = []string{
	"❄️ **From the day we are born, we search for who we are.** Today I celebrate you. May the passage between worlds bring you peace. — *Aurora, the witch between worlds*",
	"🌌 **The light crosses the veil** to touch your story. May courage walk with you as you reclaim what was lost. — *Aurora, the witch between worlds*",
	"💫 **The spirits hear your name.** May your search within find answers in the silence of the Freljord. — *Aurora, the witch between worlds*",
	"🕯️ **Even in the ice, there is warmth.** May your birthday warm old memories and light up who you are. — *Aurora, the witch between worlds*",
	"🌬️ **Between the realms, I walk at your side.** May this new cycle be a trail of discoveries. — *Aurora, the witch between worlds*",
}

func renderChannelMessage(pick Selector, mentions []string) string {
	tmpl := channelTemplates[pick(len(channelTemplates))]
	return strings.ReplaceAll(tmpl, usersPlaceholder, strings.Join(mentions, ", "))
}

func renderDirectMessage(pick Selector) string {
	return dmTemplates[pick(len(dmTemplates))]
}
