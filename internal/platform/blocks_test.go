package platform

import (
	"strings"
	"testing"
)

func TestKudosNotification_CarriesReciprocationButton(t *testing.T) {
	msg := KudosNotification("U1", "great work")

	if !strings.Contains(msg.Text, "<@U1>") {
		t.Fatalf("fallback text must mention the sender, got %q", msg.Text)
	}

	var btn *Element
	for _, b := range msg.Blocks {
		for i := range b.Elements {
			if b.Elements[i].ActionID == ActionReturnKudos {
				btn = &b.Elements[i]
			}
		}
	}
	if btn == nil {
		t.Fatalf("every notification must carry the return-kudos button")
	}
	// The button value is the opaque state that addresses the return kudos.
	if btn.Value != "U1" {
		t.Fatalf("button value must be the sender ID, got %q", btn.Value)
	}
}

func TestTermsPrompt_HasAcceptButton(t *testing.T) {
	msg := TermsPrompt()
	found := false
	for _, b := range msg.Blocks {
		for _, e := range b.Elements {
			if e.ActionID == ActionAcceptTerms {
				found = true
			}
		}
	}
	if !found {
		t.Fatalf("terms prompt must carry the accept button")
	}
}

func TestForms_CallbackAndMetadata(t *testing.T) {
	f := KudosForm("U5")
	if f.CallbackID != CallbackKudosReason || f.PrivateMetadata != "U5" {
		t.Fatalf("unexpected kudos form: %+v", f)
	}
	r := ReturnKudosForm("U6")
	if r.CallbackID != CallbackReturnReason || r.PrivateMetadata != "U6" {
		t.Fatalf("unexpected return form: %+v", r)
	}
	// Both dialogs expose the same optional reason field.
	for _, form := range []Form{f, r} {
		if len(form.Fields) != 1 || form.Fields[0].ID != FieldReason || !form.Fields[0].Optional {
			t.Fatalf("unexpected fields: %+v", form.Fields)
		}
	}
}
