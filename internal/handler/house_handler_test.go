package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/dafibh/fortuna/household-backend/internal/domain"
	"github.com/dafibh/fortuna/household-backend/internal/service"
	"github.com/dafibh/fortuna/household-backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHouse_Success(t *testing.T) {
	handler := NewHouseHandler(service.NewHouseService(testutil.NewMockHouseRepository()))

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/houses",
		`{"name": "Main St Fourplex", "houseType": "quad", "price": "800000", "estRentPerUnit": "2000", "appraisedRentPerUnit": "2150.5"}`, 1)

	require.NoError(t, handler.CreateHouse(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response HouseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "quad", response.HouseType)
	assert.Equal(t, 4, response.NumUnits)
	assert.Equal(t, "800000.00", response.Price)
	require.NotNil(t, response.AppraisedRentPerUnit)
	assert.Equal(t, "2150.50", *response.AppraisedRentPerUnit)
}

func TestCreateHouse_NoAppraisal(t *testing.T) {
	handler := NewHouseHandler(service.NewHouseService(testutil.NewMockHouseRepository()))

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/houses",
		`{"name": "Elm Single", "houseType": "single", "price": "300000", "estRentPerUnit": "2100"}`, 1)

	require.NoError(t, handler.CreateHouse(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "appraisedRentPerUnit")
}

func TestCreateHouse_InvalidType(t *testing.T) {
	handler := NewHouseHandler(service.NewHouseService(testutil.NewMockHouseRepository()))

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/houses", `{"name": "Castle", "houseType": "castle", "price": "1", "estRentPerUnit": "1"}`, 1)

	require.NoError(t, handler.CreateHouse(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "houseType", decodeProblem(t, rec).Errors[0].Field)
}

func TestCreateHouse_MissingPrice(t *testing.T) {
	handler := NewHouseHandler(service.NewHouseService(testutil.NewMockHouseRepository()))

	c, rec := newHouseholdContext(http.MethodPost, "/api/v1/houses", `{"name": "Elm Single", "houseType": "single", "estRentPerUnit": "2100"}`, 1)

	require.NoError(t, handler.CreateHouse(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, ValidationError{Field: "price", Message: "Required"}, decodeProblem(t, rec).Errors[0])
}

func TestGetAndUpdateHouse(t *testing.T) {
	repo := testutil.NewMockHouseRepository()
	repo.AddHouse(&domain.House{ID: 1, HouseholdID: 1, Name: "Oak St Duplex", HouseType: domain.HouseTypeDuplex, Price: dec("450000"), EstRentPerUnit: dec("1500")})
	handler := NewHouseHandler(service.NewHouseService(repo))

	c, rec := newHouseholdContext(http.MethodGet, "/api/v1/houses/1", "", 1)
	require.NoError(t, handler.GetHouse(withID(c, 1)))
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newHouseholdContext(http.MethodPut, "/api/v1/houses/1",
		`{"name": "Oak St Duplex", "houseType": "tri", "price": "460000", "estRentPerUnit": "1400"}`, 1)
	require.NoError(t, handler.UpdateHouse(withID(c, 1)))
	require.Equal(t, http.StatusOK, rec.Code)

	var response HouseResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, 3, response.NumUnits)
	assert.Equal(t, "1400.00", response.EstRentPerUnit)
}

func TestDeleteHouse_NotFound(t *testing.T) {
	handler := NewHouseHandler(service.NewHouseService(testutil.NewMockHouseRepository()))

	c, rec := newHouseholdContext(http.MethodDelete, "/api/v1/houses/1", "", 1)
	require.NoError(t, handler.DeleteHouse(withID(c, 1)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
