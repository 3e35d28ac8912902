// Package azrealtime provides a client for the Azure OpenAI Realtime API.
//
// The Realtime API enables low-latency, multimodal conversations with
// GPT-4o class models over a WebSocket connection.
//
// # Connecting
//
//	client, err := azrealtime.NewClient(endpoint, apiKey,
//	    azrealtime.WithDeployment("gpt-4o-realtime-preview"),
//	)
//	if err != nil {
//	    return err
//	}
//	session, err := client.Connect(ctx)
//	if err != nil {
//	    return err
//	}
//	defer session.Close()
//
// # Session Configuration
//
// After connecting, configure the session:
//
//	err = session.UpdateSession(&azrealtime.SessionConfig{
//	    Voice:        azrealtime.VoiceAlloy,
//	    Instructions: "You are a helpful assistant.",
//	    TurnDetection: &azrealtime.TurnDetection{
//	        Type: azrealtime.VADServerVAD,
//	    },
//	})
//
// # Sending Audio
//
// Append base64-encoded PCM16 audio to the input buffer:
//
//	err = session.AppendAudioBase64(audioBase64)
//
// # Receiving Events
//
// Use the Events iterator to receive server events:
//
//	for event, err := range session.Events() {
//	    if err != nil {
//	        return err
//	    }
//	    switch event.Type {
//	    case azrealtime.EventTypeResponseAudioDelta:
//	        play(event.Delta)
//	    case azrealtime.EventTypeResponseAudioTranscriptDelta:
//	        fmt.Print(event.Delta)
//	    }
//	}
package azrealtime
