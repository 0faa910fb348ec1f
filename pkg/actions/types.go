// Package actions implements the response envelopes and shared headers of the
// Solana Actions protocol.
//
// Reference: https://solana.com/docs/advanced/actions
package actions

import (
	"encoding/json"
)

type ActionType string

const (
	ActionTypeAction      ActionType = "action"
	ActionTypeCompleted   ActionType = "completed"
	ActionTypeTransaction ActionType = "transaction"
	ActionTypeMessage     ActionType = "message"
	ActionTypePost        ActionType = "post"
	ActionTypeExternal    ActionType = "external-link"
)

type ActionParameterType string

const (
	ActionParameterTypeText     ActionParameterType = "text"
	ActionParameterTypeEmail    ActionParameterType = "email"
	ActionParameterTypeUrl      ActionParameterType = "url"
	ActionParameterTypeNumber   ActionParameterType = "number"
	ActionParameterTypeDate     ActionParameterType = "date"
	ActionParameterTypeTextArea ActionParameterType = "textarea"
)

// ActionGetResponse is the metadata document returned for a GET request
// against an action URL.
type ActionGetResponse struct {
	Type        ActionType   `json:"type"`
	Icon        string       `json:"icon"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Label       string       `json:"label"`
	Disabled    bool         `json:"disabled,omitempty"`
	Error       *ActionError `json:"error,omitempty"`
	Links       *ActionLinks `json:"links,omitempty"`
}

type ActionLinks struct {
	Actions []LinkedAction `json:"actions"`
}

// LinkedAction is a related action the client may render. Href is a URL
// template whose {name} placeholders are filled from Parameters.
type LinkedAction struct {
	Type       ActionType        `json:"type"`
	Href       string            `json:"href"`
	Label      string            `json:"label"`
	Parameters []ActionParameter `json:"parameters,omitempty"`
}

type ActionParameter struct {
	Name     string              `json:"name"`
	Label    string              `json:"label,omitempty"`
	Type     ActionParameterType `json:"type,omitempty"`
	Required bool                `json:"required,omitempty"`
}

type ActionPostRequest struct {
	Account string `json:"account"`
}

// ActionPostResponse carries a base64 encoded, unsigned transaction for the
// client to sign and send.
type ActionPostResponse struct {
	Type        ActionType `json:"type"`
	Transaction string     `json:"transaction"`
	Message     string     `json:"message,omitempty"`
}

type ActionError struct {
	Message string `json:"message"`
}

// ActionsJson is the /actions.json document mapping website paths to action
// API paths.
type ActionsJson struct {
	Rules []ActionRuleObject `json:"rules"`
}

type ActionRuleObject struct {
	PathPattern string `json:"pathPattern"`
	ApiPath     string `json:"apiPath"`
}

// ToString returns the JSON encoding of any protocol envelope.
func ToString(v any) string {
	marshalled, _ := json.Marshal(v)
	return string(marshalled)
}
