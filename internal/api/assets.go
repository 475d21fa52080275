package api

import "fmt"

// --- Asset Methods ---

func (c *Client) ListAssets() ([]Asset, error) {
	data, err := c.get("/api/assets")
	if err != nil {
		return nil, err
	}
	return decodeList[Asset](data)
}

func (c *Client) GetAsset(id int) (*Asset, error) {
	data, err := c.get(fmt.Sprintf("/api/assets/%d", id))
	if err != nil {
		return nil, err
	}
	asset, _, err := decodeOne[Asset](data)
	return asset, err
}

// CreateAsset creates a channel asset and returns it together with the
// server message.
func (c *Client) CreateAsset(input AssetInput) (*Asset, string, error) {
	data, err := c.post("/api/assets", input)
	if err != nil {
		return nil, "", err
	}
	return decodeOne[Asset](data)
}

// UpdateAsset replaces the editable fields of an existing asset.
func (c *Client) UpdateAsset(id int, input AssetInput) (*Asset, string, error) {
	data, err := c.put(fmt.Sprintf("/api/assets/%d", id), input)
	if err != nil {
		return nil, "", err
	}
	return decodeOne[Asset](data)
}

func (c *Client) DeleteAsset(id int) (string, error) {
	data, err := c.del(fmt.Sprintf("/api/assets/%d", id))
	if err != nil {
		return "", err
	}
	return decodeMessage(data)
}
