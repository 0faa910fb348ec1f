package favorites

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/code-payments/favorites-action/pkg/actions"
)

const (
	setFavoritesLabel       = "Set Favorites"
	setFavoritesTitle       = "Set Your Favorites"
	setFavoritesDescription = "Set your favorite number and color on the Solana blockchain."

	setFavoritesHrefTemplate = setFavoritesPath + "?" + numberQueryParam + "={" + numberQueryParam + "}&" + colorQueryParam + "={" + colorQueryParam + "}"
)

var setFavoritesLinks = []actions.LinkedAction{
	{
		Type:  actions.ActionTypeTransaction,
		Href:  setFavoritesHrefTemplate,
		Label: setFavoritesLabel,
		Parameters: []actions.ActionParameter{
			{
				Name:  numberQueryParam,
				Label: "Enter your favorite number",
				Type:  actions.ActionParameterTypeNumber,
			},
			{
				Name:  colorQueryParam,
				Label: "Enter your favorite color",
				Type:  actions.ActionParameterTypeText,
			},
		},
	},
}

var actionsJson = &actions.ActionsJson{
	Rules: []actions.ActionRuleObject{
		{
			PathPattern: "/api/actions/**",
			ApiPath:     "/api/actions/**",
		},
	},
}

// NewSetFavoritesMetadata returns the discovery document for the set
// favorites action. Only the icon varies between requests.
func NewSetFavoritesMetadata(iconUrl string) *actions.ActionGetResponse {
	return &actions.ActionGetResponse{
		Type:        actions.ActionTypeAction,
		Icon:        iconUrl,
		Title:       setFavoritesTitle,
		Description: setFavoritesDescription,
		Label:       setFavoritesLabel,
		Links: &actions.ActionLinks{
			Actions: setFavoritesLinks,
		},
	}
}

// resolveIconUrl makes iconPath absolute against the configured base URL, or
// else against the URL the request was made to.
func resolveIconUrl(r *http.Request, baseUrl *url.URL, iconPath string) string {
	ref, err := url.Parse(iconPath)
	if err != nil {
		return iconPath
	}

	base := baseUrl
	if base == nil {
		base = requestBaseUrl(r)
	}
	return base.ResolveReference(ref).String()
}

func requestBaseUrl(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); len(forwarded) > 0 {
		// The left most entry is the client facing protocol
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(forwarded, ",")[0]))
	}

	return &url.URL{
		Scheme: scheme,
		Host:   r.Host,
		Path:   r.URL.Path,
	}
}
