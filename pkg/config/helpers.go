package config

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/glorpus-work/senget/pkg/errors"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Keys returns every configuration key in alphabetical order.
func Keys() []string {
	fields := settingFields()
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// settingFields maps yaml keys to Settings field indexes.
func settingFields() map[string]int {
	settingsType := reflect.TypeOf(Settings{})
	fields := make(map[string]int, settingsType.NumField())
	for i := 0; i < settingsType.NumField(); i++ {
		yamlTag := settingsType.Field(i).Tag.Get("yaml")
		if yamlTag == "" || yamlTag == "-" {
			continue
		}
		fields[strings.Split(yamlTag, ",")[0]] = i
	}
	return fields
}

// SetValue sets a configuration value by its yaml key and validates the
// result. The previous value is kept when validation fails.
func (c *Config) SetValue(key, value string) error {
	idx, ok := settingFields()[key]
	if !ok {
		return fmt.Errorf("%w: %s", errors.ErrConfigUnknownKey, key)
	}

	previous := c.Settings
	field := reflect.ValueOf(&c.Settings).Elem().Field(idx)
	if err := setField(field, value); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := c.Validate(); err != nil {
		c.Settings = previous
		return err
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(n)
	default:
		return fmt.Errorf("unsupported setting type %s", field.Type())
	}
	return nil
}

// GetValue returns the value of the setting key as a string.
func (c *Config) GetValue(key string) (string, error) {
	value, ok := c.ToMap()[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", errors.ErrConfigUnknownKey, key)
	}
	return value, nil
}

// ToMap converts the settings into key/value strings.
// This is useful for displaying the configuration.
func (c *Config) ToMap() map[string]string {
	result := make(map[string]string)
	settingsValue := reflect.ValueOf(c.Settings)

	for key, idx := range settingFields() {
		fieldValue := settingsValue.Field(idx)
		if fieldValue.Type() == durationType {
			result[key] = time.Duration(fieldValue.Int()).String()
			continue
		}

		switch fieldValue.Kind() {
		case reflect.Bool:
			result[key] = strconv.FormatBool(fieldValue.Bool())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			result[key] = strconv.FormatInt(fieldValue.Int(), 10)
		case reflect.String:
			result[key] = fieldValue.String()
		default:
			result[key] = fmt.Sprintf("%v", fieldValue.Interface())
		}
	}

	return result
}
