package api

// WindowsResponse lists the look-ahead windows a client may request
type WindowsResponse struct {
	Allowed  []int `json:"allowed"`
	Defaults []int `json:"defaults"`
}
