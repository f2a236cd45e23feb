// Package content holds the bot's static response table: category-keyed
// pools of template strings with an @User placeholder for display names.
package content

import (
	"math/rand"
	"strings"
)

// Pool categories.
const (
	AfkReturns     = "afk_returns"
	WelcomeMessage = "welcome_messages"
	ShoutIntros    = "shout_intros"
	KismatBad      = "kismat_bad"
	KismatAvg      = "kismat_avg"
	KismatGood     = "kismat_good"
	Totka          = "totka"
	AukaatValues   = "aukaat_val"

	AdminReturn    = "admin_return"
	AfkSet         = "afk_set"
	Section144     = "section_144"
	Section144Off  = "section_144_off"
	ChallanIntro   = "challan_intro"
	ChallanOffense = "challan_offense"
	ChallanPaid    = "challan_paid"
	ChallanBanned  = "challan_banned"
	ChallanForgive = "challan_forgive"
	ConfessHeader  = "confess_header"
	KismatWait     = "kismat_wait"
	SaafTooOld     = "saaf_too_old"
	JhatkaBan      = "jhatka_ban"
	JhatkaReveal   = "jhatka_reveal"
	WhisperDenied  = "whisper_denied"
	WhisperExpired = "whisper_expired"
)

const placeholder = "@User"

// Table maps response categories to ordered pools of template strings.
type Table struct {
	pools map[string][]string
}

// Default returns the built-in response table.
func Default() *Table {
	return &Table{pools: defaultPools}
}

// Pick returns the pool entry at index modulo pool length, or "" for an
// unknown category. Deterministic for a fixed index.
func (t *Table) Pick(category string, index int) string {
	pool := t.pools[category]
	if len(pool) == 0 {
		return ""
	}
	if index < 0 {
		index = -index
	}
	return pool[index%len(pool)]
}

// Random returns a uniformly random pool entry, or "" for an unknown
// category.
func (t *Table) Random(category string) string {
	pool := t.pools[category]
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.Intn(len(pool))]
}

// One returns the first entry of a category, for single-line responses.
func (t *Table) One(category string) string {
	return t.Pick(category, 0)
}

// Len reports the pool size for a category.
func (t *Table) Len(category string) int {
	return len(t.pools[category])
}

// Fill substitutes the @User placeholder with a display name.
func Fill(template, name string) string {
	return strings.ReplaceAll(template, placeholder, name)
}

var defaultPools = map[string][]string{
	AfkReturns: {
		"👀 Dekho kaun wapas aaya! @User ji, neend poori ho gayi?",
		"🎉 @User is back! Group ki raunak laut aayi.",
		"😴 @User uth gaye. Ab group mein phir se drama shuru.",
		"🚨 @User spotted! AFK khatam, bakchodi on.",
	},
	WelcomeMessage: {
		"🙏 Aao @User! Chingum ki nagri mein swagat hai. Rules padh lena, warna challan katega.",
		"🚔 Naya bakra aaya hai: @User! Sambhal ke, Inspector nazar rakh raha hai.",
		"🎺 Welcome @User! Yahan sab family hai — thodi kharab wali family.",
	},
	ShoutIntros: {
		"📢 **AWAAZ UTHI HAI!**",
		"🗣️ **KISI NE CHILLA KE KAHA:**",
		"📣 **GUMNAAM ELAAN:**",
	},
	KismatBad: {
		"Aaj ghar se mat nikalna, kismat chhutti par hai.",
		"Aaj toh chai bhi pheeki milegi.",
		"Bhagwan bharose chal raha hai sab kuch.",
		"Aaj koi risk mat lena, warna pachtaoge.",
	},
	KismatAvg: {
		"Thoda idhar, thoda udhar — din kat jayega.",
		"Na bumper na zero, bas average hero.",
		"Aaj ka din chalta-phirta rahega.",
		"Kismat neutral hai, mehnat kar lo.",
	},
	KismatGood: {
		"Aaj toh chhaa gaye! Lottery ka ticket le lo.",
		"Sitare bilkul mehrbaan hain aaj.",
		"Aaj jo maangoge wahi milega, try karo.",
		"King of the day — aaj sab tumhara hai.",
	},
	Totka: {
		"Subah uthke pehle paani piyo, phir phone.",
		"Aaj peele kapde pehno, shubh rahega.",
		"Kisi ko chai pilao, kismat chamkegi.",
		"Left pocket mein ek sikka rakho.",
		"Aaj kisi se udhaar mat lena.",
	},
	AukaatValues: {
		"Do samosa aur ek cutting chai.",
		"Ek purana Nokia 3310 (charger nahi milega).",
		"Free recharge wala fake link.",
		"Aadha kilo bhindi, woh bhi basi.",
		"Ek expired discount coupon.",
	},

	AdminReturn: {
		"🎺 **ATTENTION!** 🎺\n**@User** Sahab padhaar chuke hain.",
	},
	AfkSet: {
		"💤 **@User is now AFK.**\nReason: %s\n*(Disturb mat karna)*",
	},
	Section144: {
		"🚨 **SECTION 144 LAGU!**\nAb sirf Inspector aur unke saathi bolenge. Baaki sab chup!",
	},
	Section144Off: {
		"✅ **Section 144 Removed.**\nBolne ki aazadi wapas di jaati hai.",
	},
	ChallanIntro: {
		"🚨 **CHALLAN KATEGA!**\n@User pakde gaye hain.",
	},
	ChallanOffense: {
		"Group ka mahaul kharab karna.",
	},
	ChallanPaid: {
		"💸 **CHALLAN BHARA GAYA.**\n10 minute ke liye muh band. Aage se dhyaan rakhna.",
	},
	ChallanBanned: {
		"🔨 **TADIPAAR!**\nMulzim ko group se bahar phenk diya gaya hai.",
	},
	ChallanForgive: {
		"😂 **MAAFI MIL GAYI.**\nIs baar chhod diya, agli baar seedha ban.",
	},
	ConfessHeader: {
		"🎩 **CONFESSION** 🎩",
	},
	KismatWait: {
		"✋ **Ruko!**\nInhe abhi khud hi nahi pata inki kismat. Pehle inko check karne do.",
	},
	SaafTooOld: {
		"Kuch messages purane hain, delete nahi ho rahe.",
	},
	JhatkaBan: {
		"🚨 **USER BANNED.**\nInspector ka hathoda chal gaya.",
	},
	JhatkaReveal: {
		"😂 **JHATKA!**\nDar gaye na? Koi ban-van nahi hua.",
	},
	WhisperDenied: {
		"Ye message tumhare liye nahi hai! Nikal!",
	},
	WhisperExpired: {
		"❌ **MESSAGE EXPIRED**\nRead by @User",
	},
}
