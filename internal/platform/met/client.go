package met

import (
	"context"
	"fmt"
	"net/url"

	"curator/internal/platform/httpclient"
)

const DefaultBaseURL = "https://collectionapi.metmuseum.org/public/collection/v1"

// EuropeanPaintings is the department the featured gallery is drawn from.
const EuropeanPaintings = 11

// Object matches /objects/{id}. AccessionYear is a string in the API.
type Object struct {
	ObjectID          int    `json:"objectID"`
	Title             string `json:"title"`
	ArtistDisplayName string `json:"artistDisplayName"`
	ArtistNationality string `json:"artistNationality"`
	AccessionYear     string `json:"accessionYear"`
	ObjectDate        string `json:"objectDate"`
	PrimaryImage      string `json:"primaryImage"`
	PrimaryImageSmall string `json:"primaryImageSmall"`
	Department        string `json:"department"`
	Culture           string `json:"culture"`
}

// IDList matches /objects and /search.
type IDList struct {
	Total     int   `json:"total"`
	ObjectIDs []int `json:"objectIDs"`
}

type Client struct {
	http *httpclient.Client
}

func NewClient(http *httpclient.Client) *Client {
	return &Client{http: http}
}

func (c *Client) GetObject(ctx context.Context, id int) (*Object, error) {
	var res Object
	if err := c.http.GetJSON(ctx, fmt.Sprintf("/objects/%d", id), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// DepartmentObjectIDs lists every object id in a department.
func (c *Client) DepartmentObjectIDs(ctx context.Context, departmentID int) (*IDList, error) {
	var res IDList
	if err := c.http.GetJSON(ctx, fmt.Sprintf("/objects?departmentIds=%d", departmentID), &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Search returns ids of objects with images matching query. ObjectIDs is nil when nothing matches.
func (c *Client) Search(ctx context.Context, query string) (*IDList, error) {
	var res IDList
	if err := c.http.GetJSON(ctx, "/search?hasImages=true&q="+url.QueryEscape(query), &res); err != nil {
		return nil, err
	}
	return &res, nil
}
