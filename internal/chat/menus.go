package chat

// MenuItem binds a button label to the flow it starts.
type MenuItem struct {
	Label string
	Flow  string
}

// MenuSection groups related actions under one heading.
type MenuSection struct {
	Title string
	Items []MenuItem
}

// MainMenu is the admin action catalog the transport renders. Every entry
// references a flow registered by BuildFlows.
func MainMenu() []MenuSection {
	return []MenuSection{
		{Title: "Books", Items: []MenuItem{
			{Label: "List books", Flow: "book_list"},
			{Label: "Search books", Flow: "book_search"},
			{Label: "Add book", Flow: "book_add"},
			{Label: "Edit book", Flow: "book_edit"},
			{Label: "Delete book", Flow: "book_delete"},
			{Label: "Add quote", Flow: "book_quote_add"},
			{Label: "Remove quote", Flow: "book_quote_remove"},
		}},
		{Title: "Vinyl", Items: []MenuItem{
			{Label: "List records", Flow: "vinyl_list"},
			{Label: "Search records", Flow: "vinyl_search"},
			{Label: "Records by genre", Flow: "vinyl_by_genre"},
			{Label: "Add record", Flow: "vinyl_add"},
			{Label: "Edit record", Flow: "vinyl_edit"},
			{Label: "Delete record", Flow: "vinyl_delete"},
			{Label: "Set cover photo", Flow: "vinyl_photo"},
			{Label: "Remove cover photo", Flow: "vinyl_photo_remove"},
		}},
		{Title: "Coffee", Items: []MenuItem{
			{Label: "List coffee", Flow: "coffee_list"},
			{Label: "Add brand", Flow: "brand_add"},
			{Label: "Edit brand", Flow: "brand_edit"},
			{Label: "Delete brand", Flow: "brand_delete"},
			{Label: "Add coffee", Flow: "coffee_add"},
			{Label: "Edit coffee", Flow: "coffee_edit"},
			{Label: "Delete coffee", Flow: "coffee_delete"},
			{Label: "Add review", Flow: "review_add"},
			{Label: "Edit review", Flow: "review_edit"},
			{Label: "Delete review", Flow: "review_delete"},
		}},
		{Title: "Figures", Items: []MenuItem{
			{Label: "List figures", Flow: "figure_list"},
			{Label: "Add figure", Flow: "figure_add"},
			{Label: "Edit figure", Flow: "figure_edit"},
			{Label: "Delete figure", Flow: "figure_delete"},
		}},
		{Title: "Plants", Items: []MenuItem{
			{Label: "List plants", Flow: "plant_list"},
			{Label: "Add plant", Flow: "plant_add"},
			{Label: "Edit plant", Flow: "plant_edit"},
			{Label: "Delete plant", Flow: "plant_delete"},
			{Label: "Add photo", Flow: "plant_photo_add"},
			{Label: "Remove photo", Flow: "plant_photo_remove"},
		}},
		{Title: "Projects", Items: []MenuItem{
			{Label: "List projects", Flow: "project_list"},
			{Label: "Add project", Flow: "project_add"},
			{Label: "Edit project", Flow: "project_edit"},
			{Label: "Delete project", Flow: "project_delete"},
		}},
		{Title: "Research", Items: []MenuItem{
			{Label: "List publications", Flow: "publication_list"},
			{Label: "List infographics", Flow: "infographic_list"},
			{Label: "Add publication", Flow: "publication_add"},
			{Label: "Edit publication", Flow: "publication_edit"},
			{Label: "Delete publication", Flow: "publication_delete"},
			{Label: "Add infographic", Flow: "infographic_add"},
			{Label: "Edit infographic", Flow: "infographic_edit"},
			{Label: "Delete infographic", Flow: "infographic_delete"},
		}},
		{Title: "Media & Site", Items: []MenuItem{
			{Label: "List media links", Flow: "media_link_list"},
			{Label: "Add media link", Flow: "media_link_add"},
			{Label: "Edit media link", Flow: "media_link_edit"},
			{Label: "Delete media link", Flow: "media_link_delete"},
			{Label: "Edit site settings", Flow: "site_config_edit"},
		}},
	}
}
