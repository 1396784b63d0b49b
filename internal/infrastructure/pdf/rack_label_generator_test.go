package pdf_test

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/armazem-api/internal/application/labels"
	"github.com/jhoicas/armazem-api/internal/domain/entity"
	"github.com/jhoicas/armazem-api/internal/infrastructure/pdf"
)

func TestGenerateRackLabel(t *testing.T) {
	label := labels.RackLabel{
		Rack:     entity.Rack{Code: "A-01-02-03-04", Aisle: 1, Rack: 2, Level: 3, Column: 4},
		ZoneName: "A",
	}
	for i := 0; i < 10; i++ {
		label.Lines = append(label.Lines, labels.LabelLine{
			Key:      entity.OrderLineKey{RequisitionNumber: "REQ", OrderNumber: fmt.Sprintf("ENC-%d", i), ArticleCode: "ART"},
			Unit:     "UN",
			Quantity: decimal.NewFromInt(int64(i + 1)),
		})
	}

	out, err := pdf.NewMarotoLabelGenerator().GenerateRackLabel(context.Background(), label)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "debe ser un documento PDF")
}

func TestGenerateRackLabel_Vacio(t *testing.T) {
	out, err := pdf.NewMarotoLabelGenerator().GenerateRackLabel(context.Background(), labels.RackLabel{
		Rack: entity.Rack{Code: "B-01-01-01-01"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
