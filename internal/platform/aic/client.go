package aic

import (
	"context"
	"fmt"
	"net/url"

	"curator/internal/platform/httpclient"
)

const DefaultBaseURL = "https://api.artic.edu/api/v1"

// fields limits AIC payloads to what the gallery renders.
const fields = "id,title,artist_title,date_end,place_of_origin,image_id"

// Artwork matches an element of the artworks endpoints' data.
type Artwork struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	ArtistTitle   string `json:"artist_title"`
	DateEnd       *int   `json:"date_end"`
	PlaceOfOrigin string `json:"place_of_origin"`
	ImageID       string `json:"image_id"`
}

// Pagination matches the pagination block of list responses.
type Pagination struct {
	Total       int `json:"total"`
	Limit       int `json:"limit"`
	TotalPages  int `json:"total_pages"`
	CurrentPage int `json:"current_page"`
}

// ListResponse matches /artworks and /artworks/search.
type ListResponse struct {
	Pagination Pagination `json:"pagination"`
	Data       []Artwork  `json:"data"`
}

// SingleResponse matches /artworks/{id}.
type SingleResponse struct {
	Data Artwork `json:"data"`
}

type Client struct {
	http *httpclient.Client
}

func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

// GetArtwork fetches one artwork by id.
func (c *Client) GetArtwork(ctx context.Context, id int) (*Artwork, error) {
	var res SingleResponse
	if err := c.http.GetJSON(ctx, fmt.Sprintf("/artworks/%d?fields=%s", id, fields), &res); err != nil {
		return nil, err
	}
	return &res.Data, nil
}

// ListArtworks returns one page of the public artworks listing.
func (c *Client) ListArtworks(ctx context.Context, page, limit int) (*ListResponse, error) {
	var res ListResponse
	path := fmt.Sprintf("/artworks?page=%d&limit=%d&fields=%s", page, limit, fields)
	if err := c.http.GetJSON(ctx, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// SearchArtworks runs a full-text query against the artworks index.
func (c *Client) SearchArtworks(ctx context.Context, query string, limit int) (*ListResponse, error) {
	var res ListResponse
	path := fmt.Sprintf("/artworks/search?q=%s&limit=%d&fields=%s", url.QueryEscape(query), limit, fields)
	if err := c.http.GetJSON(ctx, path, &res); err != nil {
		return nil, err
	}
	return &res, nil
}
