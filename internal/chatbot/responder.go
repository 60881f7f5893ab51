// Package chatbot answers site visitor messages with canned replies.
package chatbot

import (
	"strings"
)

type Reply struct {
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
	Link        string   `json:"link,omitempty"`
}

type rule struct {
	keywords []string
	reply    Reply
}

const defaultMessage = "Thanks for reaching out! I can tell you about our services, case studies or the AI readiness assessment. You can also leave your details on the contact page and a consultant will follow up."

var defaultSuggestions = []string{"Take the assessment", "View services", "Contact us"}

// Responder matches messages against keyword rules in order.
type Responder struct {
	rules    []rule
	fallback Reply
}

func NewResponder() *Responder {
	return &Responder{
		rules:    defaultRules,
		fallback: Reply{Message: defaultMessage, Suggestions: defaultSuggestions},
	}
}

// Reply returns the first rule whose keyword appears in the lower-cased
// message, or the default reply.
func (r *Responder) Reply(message string) Reply {
	msg := strings.ToLower(strings.TrimSpace(message))
	if msg == "" {
		return r.fallback
	}
	for _, rl := range r.rules {
		for _, kw := range rl.keywords {
			if strings.Contains(msg, kw) {
				return rl.reply
			}
		}
	}
	return r.fallback
}

var defaultRules = []rule{
	{
		keywords: []string{"assessment", "readiness", "maturity", "score"},
		reply: Reply{
			Message:     "Our free AI readiness assessment takes about ten minutes. It scores you across six areas and recommends next steps for your maturity level.",
			Suggestions: []string{"Start the assessment"},
			Link:        "/assessment",
		},
	},
	{
		keywords: []string{"price", "pricing", "cost", "budget", "how much"},
		reply: Reply{
			Message:     "Engagements are scoped to your goals, from a fixed-price strategy sprint to ongoing delivery teams. Share a few details and we will send a proposal.",
			Suggestions: []string{"Contact us"},
			Link:        "/contact",
		},
	},
	{
		keywords: []string{"case stud", "example", "client", "customer"},
		reply: Reply{
			Message: "We have helped retailers, insurers and manufacturers put AI into production. Take a look at our case studies.",
			Link:    "/case-studies",
		},
	},
	{
		keywords: []string{"governance", "ethic", "responsible", "compliance", "risk"},
		reply: Reply{
			Message: "Our responsible AI practice sets up policies, risk reviews and ownership so you can scale AI safely.",
			Link:    "/services/governance",
		},
	},
	{
		keywords: []string{"service", "offer", "help with", "what do you do"},
		reply: Reply{
			Message:     "We offer AI strategy, data foundations, MLOps, generative AI solutions, governance and AI literacy training.",
			Suggestions: []string{"View services", "Take the assessment"},
			Link:        "/services",
		},
	},
	{
		keywords: []string{"contact", "talk", "call", "meeting", "demo"},
		reply: Reply{
			Message:     "We would love to talk. Leave your details on the contact page and a consultant will reach out within one business day.",
			Suggestions: []string{"Contact us"},
			Link:        "/contact",
		},
	},
	{
		keywords: []string{"hello", "hi ", "hey"},
		reply: Reply{
			Message:     "Hi there! How can I help you with your AI journey today?",
			Suggestions: defaultSuggestions,
		},
	},
}
