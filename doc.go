// Package tweet2html renders social media posts (status text plus entity
// annotations) to HTML, and optionally to a standalone page and a PDF
// snapshot using headless Chrome.
//
// # Quick Start
//
// Create a converter, convert a post, and close when done:
//
//	conv, err := tweet2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, tweet2html.Input{
//	    Post:   post,
//	    Handle: "golang",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Markup)
//
// result.Markup holds the text block with hashtags, mentions and links
// turned into anchors, followed by a video frame when the post links to a
// known video host. A photo is returned separately in result.Photo so the
// caller decides where it goes.
//
// # Conversion Pipeline
//
// The conversion process follows these stages:
//
//  1. Classification: links to photo and video hosts become media entities
//  2. Extraction: each entity becomes a text replacement, media go aside
//  3. Splicing: replacements are applied from the end of the text backwards
//  4. Rendering: text block, embed frame, optional page and PDF
//
// Entity indices count Unicode code points, as the platform API does.
// Entities with unusable indices are skipped (Result.Skipped); replacements
// whose spans overlap are dropped (Result.Dropped) unless WithStrictSpans
// is set, in which case Convert fails with ErrOverlappingSpans.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := tweet2html.NewConverter(
//	    tweet2html.WithLinkHost("https://x.com"),
//	    tweet2html.WithDateFormat("long"),
//	    tweet2html.WithStyle("dark"),
//	    tweet2html.WithLogger(logrus.StandardLogger()),
//	)
//
// Per-conversion options are passed via Input:
//
//	result, err := conv.Convert(ctx, tweet2html.Input{
//	    Post:       post,
//	    Standalone: true, // result.HTML holds a complete page
//	    PDF:        true, // result.PDF holds a snapshot of that page
//	})
//
// # Parallel Processing
//
// Convert is safe for concurrent use. For parallel PDF rendering, use
// ConverterPool to give each worker its own browser:
//
//	pool := tweet2html.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Convert(ctx, input)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// No browser is started unless a PDF is requested.
//
// Use ROD_BROWSER_BIN to specify a custom Chrome binary; the sandbox is
// disabled when it is set or when CI=true.
package tweet2html
