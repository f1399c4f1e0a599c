package chat

import (
	"context"
	"fmt"

	"shelfcore/pkg/domain"
)

func (b *flowBuilder) mediaLinkOptions(ctx context.Context, _ *Session) ([]Option, error) {
	links, err := b.catalog.ListMediaLinks(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]Option, 0, len(links))
	for _, l := range links {
		label := l.Type
		if l.Label != nil && *l.Label != "" {
			label = *l.Label
		}
		opts = append(opts, Option{Label: label, Value: l.ID})
	}
	return opts, nil
}

func (b *flowBuilder) mediaFlows() []*Flow {
	linkAdd := &Flow{
		Name:  "media_link_add",
		Intro: "Adding a media link.",
		Steps: []Step{
			{Field: "type", Prompt: "Link type?", Kind: StepChoice, Required: true, FreeText: true,
				Options: func(ctx context.Context, s *Session) ([]Option, error) {
					return Opts(mediaLinkTypes...), nil
				}},
			{Field: "label", Prompt: "Display label?", Kind: StepText},
			{Field: "value", Prompt: "Link target (URL, handle, address)?", Kind: StepText, Required: true},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			link, err := b.catalog.CreateMediaLink(ctx, domain.MediaLink{
				Type:  reqStr(s, "type"),
				Label: optStr(s, "label"),
				Value: reqStr(s, "value"),
			})
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Media link (%s) added.", link.Type), nil
		},
	}

	editFields := []editField{
		{Key: "type", Label: "Type", Prompt: "New type?"},
		{Key: "label", Label: "Label", Prompt: "New label?", Nullable: true},
		{Key: "value", Label: "Target", Prompt: "New target?"},
	}
	linkEdit := editFlow("media_link_edit", "Which link?", b.mediaLinkOptions, editFields,
		func(ctx context.Context, s *Session, f editField, value string) (string, error) {
			var patch domain.MediaLinkPatch
			switch f.Key {
			case "type":
				patch.Type = domain.Set(value)
			case "label":
				patch.Label = strPatch(value)
			case "value":
				patch.Value = domain.Set(value)
			}
			link, err := b.catalog.UpdateMediaLink(ctx, s.Scratch["id"], patch)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("Media link (%s) updated.", link.Type), nil
		})

	linkDelete := deleteFlow("media_link_delete", "Which link?", "Delete this link?",
		"Media link deleted.", b.mediaLinkOptions, b.catalog.DeleteMediaLink)

	siteConfig := &Flow{
		Name:  "site_config_edit",
		Intro: "Editing site settings. Skip a field to keep its current value.",
		Steps: []Step{
			{Field: "wish_url", Prompt: "Wish-list URL?", Kind: StepText},
			{Field: "bio", Prompt: "About bio?", Kind: StepText},
		},
		Commit: func(ctx context.Context, s *Session) (string, error) {
			var patch domain.SiteConfigPatch
			if v, ok := s.Value("wish_url"); ok {
				patch.ExternalWishURL = domain.Set(v)
			}
			if v, ok := s.Value("bio"); ok {
				patch.AboutBio = domain.Set(v)
			}
			if _, err := b.catalog.UpdateSiteConfig(ctx, patch); err != nil {
				return "", err
			}
			return "Site settings updated.", nil
		},
	}

	return []*Flow{linkAdd, linkEdit, linkDelete, siteConfig}
}
