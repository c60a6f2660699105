package domain

import (
	"bytes"
	"encoding/json"
)

// flexID decodes a JSON string or number into canonical string form.
// Catalog documents and persisted carts predating the current scheme
// carry numeric ids.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	*f = flexID(CanonicalID(v))
	return nil
}

func (p *Product) UnmarshalJSON(data []byte) error {
	type product Product
	aux := struct {
		ID          flexID `json:"id"`
		ScentID     flexID `json:"scentId"`
		SizeID      flexID `json:"sizeId"`
		ColorID     flexID `json:"colorId"`
		ContainerID flexID `json:"containerId"`
		WickID      flexID `json:"wickId"`
		*product
	}{product: (*product)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.ID = string(aux.ID)
	p.ScentID = string(aux.ScentID)
	p.SizeID = string(aux.SizeID)
	p.ColorID = string(aux.ColorID)
	p.ContainerID = string(aux.ContainerID)
	p.WickID = string(aux.WickID)
	return nil
}

func (s *Scent) UnmarshalJSON(data []byte) error {
	type scent Scent
	aux := struct {
		ID flexID `json:"id"`
		*scent
	}{scent: (*scent)(s)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.ID = string(aux.ID)
	return nil
}

func (o *Option) UnmarshalJSON(data []byte) error {
	type option Option
	aux := struct {
		ID flexID `json:"id"`
		*option
	}{option: (*option)(o)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.ID = string(aux.ID)
	return nil
}

func (l *LineItem) UnmarshalJSON(data []byte) error {
	type lineItem LineItem
	aux := struct {
		ID        flexID `json:"id"`
		ProductID flexID `json:"productId"`
		*lineItem
	}{lineItem: (*lineItem)(l)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	l.ID = string(aux.ID)
	l.ProductID = string(aux.ProductID)
	return nil
}
