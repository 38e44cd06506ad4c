package dom

// Handle types for HTML elements. Each wraps the Element created for the
// tag so the root of a markup expression keeps its specific type.

type (
	// HTMLAnchorElement is <a>.
	HTMLAnchorElement struct{ Element }
	// HTMLAreaElement is <area>.
	HTMLAreaElement struct{ Element }
	// HTMLAudioElement is <audio>.
	HTMLAudioElement struct{ Element }
	// HTMLBRElement is <br>.
	HTMLBRElement struct{ Element }
	// HTMLBaseElement is <base>.
	HTMLBaseElement struct{ Element }
	// HTMLBodyElement is <body>.
	HTMLBodyElement struct{ Element }
	// HTMLButtonElement is <button>.
	HTMLButtonElement struct{ Element }
	// HTMLCanvasElement is <canvas>.
	HTMLCanvasElement struct{ Element }
	// HTMLDListElement is <dl>.
	HTMLDListElement struct{ Element }
	// HTMLDataElement is <data>.
	HTMLDataElement struct{ Element }
	// HTMLDataListElement is <datalist>.
	HTMLDataListElement struct{ Element }
	// HTMLDetailsElement is <details>.
	HTMLDetailsElement struct{ Element }
	// HTMLDialogElement is <dialog>.
	HTMLDialogElement struct{ Element }
	// HTMLDivElement is <div>.
	HTMLDivElement struct{ Element }
	// HTMLElement is used for elements without a dedicated interface (<abbr>, <address>, ...).
	HTMLElement struct{ Element }
	// HTMLEmbedElement is <embed>.
	HTMLEmbedElement struct{ Element }
	// HTMLFieldSetElement is <fieldset>.
	HTMLFieldSetElement struct{ Element }
	// HTMLFormElement is <form>.
	HTMLFormElement struct{ Element }
	// HTMLHRElement is <hr>.
	HTMLHRElement struct{ Element }
	// HTMLHeadElement is <head>.
	HTMLHeadElement struct{ Element }
	// HTMLHeadingElement is elements without a dedicated interface (<h1>, <h2>, ...).
	HTMLHeadingElement struct{ Element }
	// HTMLHtmlElement is <html>.
	HTMLHtmlElement struct{ Element }
	// HTMLIFrameElement is <iframe>.
	HTMLIFrameElement struct{ Element }
	// HTMLImageElement is <img>.
	HTMLImageElement struct{ Element }
	// HTMLInputElement is <input>.
	HTMLInputElement struct{ Element }
	// HTMLLIElement is <li>.
	HTMLLIElement struct{ Element }
	// HTMLLabelElement is <label>.
	HTMLLabelElement struct{ Element }
	// HTMLLegendElement is <legend>.
	HTMLLegendElement struct{ Element }
	// HTMLLinkElement is <link>.
	HTMLLinkElement struct{ Element }
	// HTMLMapElement is <map>.
	HTMLMapElement struct{ Element }
	// HTMLMenuElement is <menu>.
	HTMLMenuElement struct{ Element }
	// HTMLMetaElement is <meta>.
	HTMLMetaElement struct{ Element }
	// HTMLMeterElement is <meter>.
	HTMLMeterElement struct{ Element }
	// HTMLModElement is <del>, <ins>.
	HTMLModElement struct{ Element }
	// HTMLOListElement is <ol>.
	HTMLOListElement struct{ Element }
	// HTMLObjectElement is <object>.
	HTMLObjectElement struct{ Element }
	// HTMLOptGroupElement is <optgroup>.
	HTMLOptGroupElement struct{ Element }
	// HTMLOptionElement is <option>.
	HTMLOptionElement struct{ Element }
	// HTMLOutputElement is <output>.
	HTMLOutputElement struct{ Element }
	// HTMLParagraphElement is <p>.
	HTMLParagraphElement struct{ Element }
	// HTMLParamElement is <param>.
	HTMLParamElement struct{ Element }
	// HTMLPictureElement is <picture>.
	HTMLPictureElement struct{ Element }
	// HTMLPreElement is <pre>.
	HTMLPreElement struct{ Element }
	// HTMLProgressElement is <progress>.
	HTMLProgressElement struct{ Element }
	// HTMLQuoteElement is <blockquote>, <q>.
	HTMLQuoteElement struct{ Element }
	// HTMLScriptElement is <script>.
	HTMLScriptElement struct{ Element }
	// HTMLSelectElement is <select>.
	HTMLSelectElement struct{ Element }
	// HTMLSlotElement is <slot>.
	HTMLSlotElement struct{ Element }
	// HTMLSourceElement is <source>.
	HTMLSourceElement struct{ Element }
	// HTMLSpanElement is <span>.
	HTMLSpanElement struct{ Element }
	// HTMLStyleElement is <style>.
	HTMLStyleElement struct{ Element }
	// HTMLTableCaptionElement is <caption>.
	HTMLTableCaptionElement struct{ Element }
	// HTMLTableCellElement is <td>, <th>.
	HTMLTableCellElement struct{ Element }
	// HTMLTableColElement is <col>, <colgroup>.
	HTMLTableColElement struct{ Element }
	// HTMLTableElement is <table>.
	HTMLTableElement struct{ Element }
	// HTMLTableRowElement is <tr>.
	HTMLTableRowElement struct{ Element }
	// HTMLTableSectionElement is <tbody>, <tfoot>, <thead>.
	HTMLTableSectionElement struct{ Element }
	// HTMLTemplateElement is <template>.
	HTMLTemplateElement struct{ Element }
	// HTMLTextAreaElement is <textarea>.
	HTMLTextAreaElement struct{ Element }
	// HTMLTimeElement is <time>.
	HTMLTimeElement struct{ Element }
	// HTMLTitleElement is <title>.
	HTMLTitleElement struct{ Element }
	// HTMLTrackElement is <track>.
	HTMLTrackElement struct{ Element }
	// HTMLUListElement is <ul>.
	HTMLUListElement struct{ Element }
	// HTMLVideoElement is <video>.
	HTMLVideoElement struct{ Element }
)
