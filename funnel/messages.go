package funnel

import "fmt"

// Links holds the external destinations the funnel points users at.
type Links struct {
	SignupURL     string `yaml:"signup_url" envconfig:"FUNNEL_SIGNUP_URL"`
	CommunityURL  string `yaml:"community_url" envconfig:"FUNNEL_COMMUNITY_URL"`
	SupportHandle string `yaml:"support_handle" envconfig:"FUNNEL_SUPPORT_HANDLE"`
}

// DefaultLinks returns the production destinations.
func DefaultLinks() Links {
	return Links{
		SignupURL:     "https://www.vantagemarkets.com/open-live-account/?affid=NzM2MzQ1MQ==",
		CommunityURL:  "https://t.me/+Rverm3diRHU5NWY0",
		SupportHandle: "@maxjameshatton",
	}
}

// Normalize fills empty link fields with the defaults.
func (l *Links) Normalize() {
	def := DefaultLinks()
	if l.SignupURL == "" {
		l.SignupURL = def.SignupURL
	}
	if l.CommunityURL == "" {
		l.CommunityURL = def.CommunityURL
	}
	if l.SupportHandle == "" {
		l.SupportHandle = def.SupportHandle
	}
}

const pitchIntro = "Here's a quick rundown of what you'll get inside our free trading community:"

const pitchBenefits = "✅ 2-5+ High quality trades per day.\n" +
	"✅ 80% success rate on our gold signals week in week out.\n" +
	"✅ Full step by step guide on how to take the trades.\n" +
	"✅ Weekly calls including giveaways and trading tips.\n" +
	"✅ Trusted broker partnership for your security."

const pitchCosts = "And the best part:\n\n" +
	"💰 No setup costs\n" +
	"💰 No monthly fees\n" +
	"💰 No contracts ever\n\n" +
	"Most importantly, you're in full control of your capital."

const chooseOption = "Choose an option below to continue:"

const brokerQuestion = "Amazing!\n\n" +
	"Now before we begin, do you already have an account with Vantage Markets?\n\n" +
	"If not, we'd be happy to guide you through the simple setup process."

const freeBreakdown = "We've been using the same partner broker now for coming on 3 years and have built an amazing relationship with them. " +
	"They are one of the world's leading platforms when it comes to trading and they cover all the costs for us.\n\n" +
	"When you trade through them, they sponsor your entire membership."

const freePerks = "So you get:\n" +
	"- All the gold signals from our expert traders\n" +
	"- Full community access\n" +
	"- Weekly training\n" +
	"- Daily support"

const freeClose = "...all completely free.\n\n" +
	"It's a win-win that lets us focus on what matters, helping you profit!"

const fallbackText = "I didn't understand that. Try tapping a button."

func greetAfterSave(firstName string) string {
	return fmt.Sprintf("Thanks for that %s.\n\n%s", firstName, pitchIntro)
}

func freeQuestionGreeting(firstName string) string {
	return fmt.Sprintf("Great question %s!\n\nHere's the simple breakdown:", firstName)
}

func signupIntro(firstName string) string {
	return fmt.Sprintf("No worries %s!\n\n"+
		"To get started and receive our gold signals for FREE, you'll need to create a "+
		"Vantage Markets account using our specific referral link.", firstName)
}

func signupSteps(l Links) string {
	return "Important: Please follow these steps carefully:\n\n" +
		"- Click this link to open your Vantage Markets account:\n\n" +
		l.SignupURL + "\n\n" +
		"- Complete the registration process directly through this link without navigating away or closing the page.\n\n" +
		"- This special link ensures you're properly allocated to our team network, which is what qualifies you for free access to our signals.\n\n" +
		"- When the page opens, enter your *email* and create a password, then click **Proceed**.\n\n" +
		"- When choosing your account type, select: STANDARD STP ACCOUNT ✅\n\n" +
		"- Please then verify with an ID (Driving License or Passport works, plus a utility bill).\n\n" +
		"- Lastly, to become a member of the VIP community, fund your account with a minimum of £300. (This is your trading capital)\n\n" +
		"If you need any help at all, message me directly: " + l.SupportHandle
}

const signupReturn = `Once your account is created, return here and click "Done" so we can proceed with the next steps.`

func alreadyRegistered(l Links) string {
	return fmt.Sprintf(`Please contact %s and say "already registered with vantage".`, l.SupportHandle)
}

func communityInvite(l Links) string {
	return fmt.Sprintf("Amazing, here is the link to join the community. %s. "+
		"Please request to join and then send %s your Full Name and "+
		"Vantage Account Number and we will get you added asap!", l.CommunityURL, l.SupportHandle)
}
